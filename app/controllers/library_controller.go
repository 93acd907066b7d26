package controllers

import (
	"net/http"

	"wallboard/app/services"
)

// LibraryController serves the static library content.
type LibraryController struct {
	libraryService *services.LibraryService
}

// NewLibraryController creates a new LibraryController.
func NewLibraryController(libraryService *services.LibraryService) *LibraryController {
	return &LibraryController{libraryService: libraryService}
}

func (lc *LibraryController) Recipes(w http.ResponseWriter, r *http.Request) {
	recipes, err := lc.libraryService.Recipes(r.Context())
	if err != nil {
		sendError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, recipes)
}

func (lc *LibraryController) Places(w http.ResponseWriter, r *http.Request) {
	places, err := lc.libraryService.Places(r.Context())
	if err != nil {
		sendError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, places)
}

func (lc *LibraryController) History(w http.ResponseWriter, r *http.Request) {
	entries, err := lc.libraryService.History(r.Context())
	if err != nil {
		sendError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, entries)
}
