package api

import (
	"context"
	"net/http"

	"github.com/fhuszti/tourism-ms-go/internal/logger"
	"github.com/fhuszti/tourism-ms-go/internal/model"
)

// CreateCityHandler creates a city from a form or JSON body.
func CreateCityHandler(create func(context.Context, *model.City) (*model.City, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		values, err := readForm(r)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid request", err)
			return
		}

		city, err := create(r.Context(), DecodeCity(values))
		if err != nil {
			WriteResourceError(w, r, err, "Failed to create city")
			return
		}

		RespondSuccess(w, http.StatusCreated, "City created successfully", city)
		logger.Infof(r.Context(), "✅  Successfully created city #%s", city.ID)
	}
}
