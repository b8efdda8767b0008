// Package monitor serves the live session state over HTTP for debugging
// layouts and checking what is currently sounding.
package monitor

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/AlmightyFrog/AccordionBassMIDIKeyboard/layout"
	"github.com/AlmightyFrog/AccordionBassMIDIKeyboard/model"
	"github.com/AlmightyFrog/AccordionBassMIDIKeyboard/pipeline"
)

type layoutCell struct {
	Key     string `json:"key"`
	Name    string `json:"name"`
	Row     string `json:"row,omitempty"`
	Pitch   uint8  `json:"pitch,omitempty"`
	Control uint8  `json:"cc,omitempty"`
	Channel uint8  `json:"channel"`
}

type layoutResponse struct {
	Name  string       `json:"name"`
	Cells []layoutCell `json:"cells"`
}

// Handler builds the monitor routes: GET /state and GET /layout.
func Handler(p *pipeline.Pipeline, table *layout.Table) http.Handler {
	router := mux.NewRouter().StrictSlash(true)

	router.HandleFunc("/state", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, p.State())
	}).Methods("GET")

	router.HandleFunc("/layout", func(w http.ResponseWriter, r *http.Request) {
		res := layoutResponse{Name: table.Name()}
		for _, key := range table.Keys() {
			if cell, ok := table.Lookup(key); ok {
				res.Cells = append(res.Cells, layoutCell{
					Key:     key,
					Name:    cell.Name,
					Row:     cell.Row.String(),
					Pitch:   cell.BasePitch,
					Channel: cell.Channel,
				})
				continue
			}
			if aux, ok := table.LookupAux(key); ok {
				res.Cells = append(res.Cells, layoutCell{
					Key:     key,
					Name:    aux.Name,
					Control: aux.Control,
					Channel: aux.Channel,
				})
			}
		}
		writeJSON(w, res)
	}).Methods("GET")

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(model.ErrorResponse{Error: "not found"})
	})

	return cors.Default().Handler(router)
}

// Serve blocks on the HTTP listener. Run it in its own goroutine; its
// failure is not fatal to the bridge.
func Serve(addr string, p *pipeline.Pipeline, table *layout.Table, log *zap.Logger) {
	log.Info("monitor listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, Handler(p, table)); err != nil {
		log.Error("monitor server stopped", zap.Error(err))
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
