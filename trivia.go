/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/Seednode/quizbox/trivia"
	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

const qrSize = 320

type roomLookup interface {
	Room(ctx context.Context, code string) (trivia.RoomSnapshot, bool)
	Stats(ctx context.Context) (trivia.Stats, bool)
}

func serveTriviaWS(cfg *Config, hub *trivia.Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		logf(cfg, "SERVE: Websocket opened by %s", realIP(r))

		hub.ServeWS(w, r)

		logf(cfg, "SERVE: Websocket closed by %s", realIP(r))
	}
}

func serveRoomStats(cfg *Config, rooms roomLookup, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		startTime := time.Now()

		stats, ok := rooms.Stats(r.Context())
		if !ok {
			http.Error(w, "server is shutting down", http.StatusServiceUnavailable)

			return
		}

		written, err := writeJSON(cfg, w, http.StatusOK, stats)
		if err != nil {
			errs <- err

			return
		}

		logf(cfg, "SERVE: Room stats (%s) to %s in %s",
			humanReadableSize(int64(written)),
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}

func serveRoom(cfg *Config, rooms roomLookup, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		startTime := time.Now()

		code := trivia.NormalizeCode(p.ByName("code"))

		snap, ok := rooms.Room(r.Context(), code)
		if !ok {
			_, err := writeJSON(cfg, w, http.StatusNotFound, trivia.ErrorMessage{
				Type:    trivia.EventError,
				Message: "Room not found.",
			})
			if err != nil {
				errs <- err
			}

			return
		}

		written, err := writeJSON(cfg, w, http.StatusOK, snap)
		if err != nil {
			errs <- err

			return
		}

		logf(cfg, "SERVE: Room %s (%s) to %s in %s",
			code,
			humanReadableSize(int64(written)),
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}

// joinURL is the address a scanned QR code should open for a room.
func joinURL(cfg *Config, r *http.Request) string {
	scheme := cfg.scheme()
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	return scheme + "://" + r.Host + strings.TrimSuffix(r.URL.Path, "/qr")
}

func serveRoomQR(cfg *Config, rooms roomLookup, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		startTime := time.Now()

		code := trivia.NormalizeCode(p.ByName("code"))

		if _, ok := rooms.Room(r.Context(), code); !ok {
			http.Error(w, "room not found", http.StatusNotFound)

			return
		}

		png, err := qrcode.Encode(joinURL(cfg, r), qrcode.Medium, qrSize)
		if err != nil {
			errs <- err
			http.Error(w, "qr generation failed", http.StatusInternalServerError)

			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-store")
		securityHeaders(cfg, w)

		written, err := w.Write(png)
		if err != nil {
			errs <- err

			return
		}

		logf(cfg, "SERVE: QR code for %s (%s) to %s in %s",
			code,
			humanReadableSize(int64(written)),
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}

// registerTriviaGame sets up routes so that:
//   - $path/ws                 → websocket for every room
//   - $path/rooms              → live room and player counts
//   - $path/rooms/:code        → public room snapshot
//   - $path/rooms/:code/qr     → PNG QR code for the room URL
func registerTriviaGame(cfg *Config, path string, mux *httprouter.Router, hub *trivia.Hub, errs chan<- error) {
	mux.GET(cfg.prefix+path+"/ws", serveTriviaWS(cfg, hub))

	mux.GET(cfg.prefix+path+"/rooms", serveRoomStats(cfg, hub, errs))

	mux.GET(cfg.prefix+path+"/rooms/:code", serveRoom(cfg, hub, errs))

	mux.GET(cfg.prefix+path+"/rooms/:code/qr", serveRoomQR(cfg, hub, errs))
}
