package services

import (
	"database/sql"

	"github.com/jfuentes/bookshelf-be/internal/apperror"
	"github.com/jfuentes/bookshelf-be/internal/models"
)

// OwnershipDecision is the outcome of an ownership check on a book.
type OwnershipDecision int

const (
	OwnershipAllowed OwnershipDecision = iota
	OwnershipDenied
	OwnershipNotFound
)

// BookServiceProvider defines the interface for book services.
type BookServiceProvider interface {
	GetAllBooks(filter models.OwnerID) ([]models.Book, error)
	GetBookByID(id int64) (models.Book, error)
	CreateBook(book models.Book) (models.Book, error)
	UpdateBook(id int64, book models.Book, claimed models.OwnerID) error
	DeleteBook(id int64, claimed models.OwnerID) error
	CheckOwnership(id int64, claimed models.OwnerID) (OwnershipDecision, error)
}

// BookService provides business logic for book management.
type BookService struct {
	db *sql.DB
}

// NewBookService creates a new BookService.
func NewBookService(db *sql.DB) *BookService {
	return &BookService{db: db}
}

// scanBook is a helper to scan a book from a row or rows object.
func scanBook(scanner interface{ Scan(...interface{}) error }) (models.Book, error) {
	var book models.Book
	var year, owner sql.NullInt64

	if err := scanner.Scan(&book.ID, &book.Title, &book.Author, &year, &owner); err != nil {
		return book, err
	}
	if year.Valid {
		y := int(year.Int64)
		book.Year = &y
	}
	if owner.Valid {
		o := owner.Int64
		book.OwnerID = &o
	}
	return book, nil
}

// GetAllBooks retrieves books, optionally filtered by owner. A non-numeric
// filter value coerces to NaN and can never match a stored owner, so it
// yields an empty result without touching the database.
func (s *BookService) GetAllBooks(filter models.OwnerID) ([]models.Book, error) {
	const base = `SELECT id, title, author, year, owner_id FROM books`

	var (
		rows *sql.Rows
		err  error
	)
	if filter.Present() {
		num, ok := filter.Num()
		if !ok {
			return []models.Book{}, nil
		}
		rows, err = s.db.Query(base+` WHERE owner_id = ?`, num)
	} else {
		rows, err = s.db.Query(base)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := []models.Book{}
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	return books, rows.Err()
}

// GetBookByID retrieves a single book by its ID.
func (s *BookService) GetBookByID(id int64) (models.Book, error) {
	row := s.db.QueryRow(`SELECT id, title, author, year, owner_id FROM books WHERE id = ?`, id)

	book, err := scanBook(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Book{}, apperror.NotFound("Book", id)
		}
		return models.Book{}, err
	}
	return book, nil
}

// CreateBook adds a new book and returns it with the generated ID.
func (s *BookService) CreateBook(book models.Book) (models.Book, error) {
	stmt, err := s.db.Prepare(`INSERT INTO books (title, author, year, owner_id) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return models.Book{}, err
	}
	defer stmt.Close()

	res, err := stmt.Exec(book.Title, book.Author, nullableInt(book.Year), nullableInt64(book.OwnerID))
	if err != nil {
		return models.Book{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.Book{}, err
	}
	book.ID = id
	return book, nil
}

// CheckOwnership decides whether a caller claiming the given owner id may
// mutate the book. An absent claim bypasses the check entirely — the caller
// is implicitly authorized. Otherwise the stored owner and the claim are
// compared numerically after coercion.
func (s *BookService) CheckOwnership(id int64, claimed models.OwnerID) (OwnershipDecision, error) {
	if !claimed.Present() {
		return OwnershipAllowed, nil
	}

	var owner sql.NullInt64
	err := s.db.QueryRow(`SELECT owner_id FROM books WHERE id = ?`, id).Scan(&owner)
	if err != nil {
		if err == sql.ErrNoRows {
			return OwnershipNotFound, nil
		}
		return OwnershipDenied, err
	}

	var stored *int64
	if owner.Valid {
		stored = &owner.Int64
	}
	if claimed.Matches(stored) {
		return OwnershipAllowed, nil
	}
	return OwnershipDenied, nil
}

// UpdateBook overwrites title, author and year. When an owner id is claimed
// the ownership check runs first; when it is omitted the update proceeds
// unconditionally, and an update on a missing id affects zero rows without
// being reported as an error.
func (s *BookService) UpdateBook(id int64, book models.Book, claimed models.OwnerID) error {
	if err := s.guard(id, claimed); err != nil {
		return err
	}

	stmt, err := s.db.Prepare(`UPDATE books SET title = ?, author = ?, year = ? WHERE id = ?`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	_, err = stmt.Exec(book.Title, book.Author, nullableInt(book.Year), id)
	return err
}

// DeleteBook removes a book. Unlike UpdateBook, the owner id is mandatory
// here even for ownerless books; that asymmetry is part of the contract.
func (s *BookService) DeleteBook(id int64, claimed models.OwnerID) error {
	if !claimed.Present() {
		return apperror.ValidationFailed("ownerId", "ownerId is required")
	}
	if err := s.guard(id, claimed); err != nil {
		return err
	}

	_, err := s.db.Exec(`DELETE FROM books WHERE id = ?`, id)
	return err
}

// guard maps an ownership decision to the error the handlers translate.
func (s *BookService) guard(id int64, claimed models.OwnerID) error {
	decision, err := s.CheckOwnership(id, claimed)
	if err != nil {
		return err
	}
	switch decision {
	case OwnershipNotFound:
		return apperror.NotFound("Book", id)
	case OwnershipDenied:
		return apperror.Forbidden("You do not own this book")
	}
	return nil
}

func nullableInt(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func nullableInt64(v *int64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
