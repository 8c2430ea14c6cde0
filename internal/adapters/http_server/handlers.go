package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
)

const maxBody = 1 << 20

type Handlers struct {
	Q *app.QueryService
	B *app.BookingService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Route("/v1/hotels", func(r chi.Router) {
		r.Get("/", h.listHotels)
		r.Post("/", h.createHotel)
		r.Route("/{hotel}", func(r chi.Router) {
			r.Get("/availability", h.availability)
			r.Post("/rooms", h.addRoom)
			r.Post("/rooms/{number}/check-in", h.checkIn)
			r.Post("/rooms/{number}/check-out", h.checkOut)
			r.Post("/reservations", h.reserve)
			r.Delete("/reservations/{id}", h.cancel)
		})
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps domain errors onto problem responses.
func writeError(w http.ResponseWriter, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeProblem(w, http.StatusBadRequest, "Invalid Request", ve.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrIllegalState):
		writeProblem(w, http.StatusConflict, "Conflict", err.Error())
	default:
		log.Error().Err(err).Msg("unhandled error")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// decode reads an optional JSON body; an empty body leaves dst untouched.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.ContentLength == 0 {
		return true
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return false
	}
	return true
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	return `W/"` + hex.EncodeToString(sum[:]) + `"`, body
}

func hotelParam(r *http.Request) string {
	raw := chi.URLParam(r, "hotel")
	if s, err := url.PathUnescape(raw); err == nil {
		return s
	}
	return raw
}

func roomParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	n, err := strconv.Atoi(chi.URLParam(r, "number"))
	if err != nil || n <= 0 {
		writeProblem(w, http.StatusBadRequest, "Invalid Room", "room number must be a positive integer")
		return 0, false
	}
	return n, true
}

func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.ListHotels(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out})
}

func (h *Handlers) createHotel(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if !decode(w, r, &body) {
		return
	}
	hotel, err := h.B.RegisterHotel(r.Context(), body.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Location", "/v1/hotels/"+url.PathEscape(hotel.Name()))
	writeJSON(w, http.StatusCreated, domain.HotelSummary{Name: hotel.Name()})
}

func (h *Handlers) addRoom(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Number int     `json:"number"`
		Kind   string  `json:"kind"`
		Cost   float64 `json:"cost"`
	}
	if !decode(w, r, &body) {
		return
	}
	if err := h.B.AddRoom(r.Context(), hotelParam(r), app.RoomInput{Number: body.Number, Kind: body.Kind, Cost: body.Cost}); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handlers) availability(w http.ResponseWriter, r *http.Request) {
	v, err := h.Q.Availability(r.Context(), hotelParam(r))
	if err != nil {
		writeError(w, err)
		return
	}

	etag, body := calcETagAndBody(v)
	// If client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write availability body")
	}
}

func (h *Handlers) reserve(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PayerID string `json:"payer_id"`
	}
	if !decode(w, r, &body) {
		return
	}
	v, err := h.B.Reserve(r.Context(), app.ReserveInput{Hotel: hotelParam(r), PayerID: body.PayerID})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

func (h *Handlers) cancel(w http.ResponseWriter, r *http.Request) {
	if err := h.B.Cancel(r.Context(), hotelParam(r), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) checkIn(w http.ResponseWriter, r *http.Request) {
	n, ok := roomParam(w, r)
	if !ok {
		return
	}
	var body struct {
		Name    string `json:"name"`
		Address string `json:"address"`
	}
	if !decode(w, r, &body) {
		return
	}
	if err := h.B.CheckIn(r.Context(), hotelParam(r), n, body.Name, body.Address); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) checkOut(w http.ResponseWriter, r *http.Request) {
	n, ok := roomParam(w, r)
	if !ok {
		return
	}
	if err := h.B.CheckOut(r.Context(), hotelParam(r), n); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
