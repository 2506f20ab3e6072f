package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jfuentes/bookshelf-be/internal/models"
	"github.com/jfuentes/bookshelf-be/internal/services"
	"github.com/rs/zerolog/log"
)

// BookHandler handles HTTP requests for the books resource.
type BookHandler struct {
	service services.BookServiceProvider
}

// NewBookHandler creates a new BookHandler.
func NewBookHandler(service services.BookServiceProvider) *BookHandler {
	return &BookHandler{service: service}
}

// BookPayload defines the request body for create and update.
type BookPayload struct {
	Title   string         `json:"title"`
	Author  string         `json:"author"`
	Year    *int           `json:"year"`
	OwnerID models.OwnerID `json:"ownerId"`
}

// Create handles the request to add a new book.
func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload BookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	book := models.Book{
		Title:  payload.Title,
		Author: payload.Author,
		Year:   payload.Year,
	}
	if owner, ok := payload.OwnerID.Int(); ok {
		book.OwnerID = &owner
	}

	created, err := h.service.CreateBook(book)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create book")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, created)
}

// GetAll handles the request to list books, optionally filtered by owner.
func (h *BookHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	filter := models.OwnerIDFromString(r.URL.Query().Get("ownerId"))

	books, err := h.service.GetAllBooks(filter)
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve books")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, books)
}

// Get handles the request to fetch a single book by its ID.
func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := bookID(r)
	if err != nil {
		respondMessage(w, http.StatusNotFound, "Book not found")
		return
	}

	book, err := h.service.GetBookByID(id)
	if err != nil {
		log.Warn().Err(err).Int64("book_id", id).Msg("Failed to get book by ID")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, book)
}

// Update handles the request to overwrite a book's fields. If the body
// carries an ownerId the ownership check runs first; otherwise the update
// is unconditional.
func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := bookID(r)
	if err != nil {
		respondMessage(w, http.StatusNotFound, "Book not found")
		return
	}

	var payload BookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	book := models.Book{
		Title:  payload.Title,
		Author: payload.Author,
		Year:   payload.Year,
	}

	if err := h.service.UpdateBook(id, book, payload.OwnerID); err != nil {
		log.Warn().Err(err).Int64("book_id", id).Msg("Failed to update book")
		respondError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "Book updated successfully")
}

// Delete handles the request to remove a book. The ownerId field is
// required here; a missing body counts the same as a missing field.
func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := bookID(r)
	if err != nil {
		respondMessage(w, http.StatusNotFound, "Book not found")
		return
	}

	var payload struct {
		OwnerID models.OwnerID `json:"ownerId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil && err != io.EOF {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.DeleteBook(id, payload.OwnerID); err != nil {
		log.Warn().Err(err).Int64("book_id", id).Msg("Failed to delete book")
		respondError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "Book deleted successfully")
}

func bookID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
