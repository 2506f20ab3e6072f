package services

import (
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jfuentes/bookshelf-be/internal/apperror"
	"github.com/jfuentes/bookshelf-be/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// mysqlDuplicateEntry is the server error code for a unique index violation.
const mysqlDuplicateEntry = 1062

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Register(email, password string, name *string) (models.User, error)
	Authenticate(email, password string) (models.User, error)
}

// UserService provides registration and login against the users table.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// Register creates a new user with a bcrypt-hashed password.
//
// The email lookup and the insert are two separate statements with no
// transaction between them, so two concurrent registrations can both pass
// the lookup. The unique index on email catches the loser, and that
// violation is reported as the same conflict as the lookup finding a row.
func (s *UserService) Register(email, password string, name *string) (models.User, error) {
	if email == "" || password == "" {
		return models.User{}, apperror.ValidationFailed("email", "Email and password are required")
	}

	var existingID int64
	err := s.db.QueryRow(`SELECT id FROM users WHERE email = ?`, email).Scan(&existingID)
	if err == nil {
		return models.User{}, apperror.Conflict("Email already registered")
	}
	if err != sql.ErrNoRows {
		return models.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	stmt, err := s.db.Prepare(`INSERT INTO users (email, password_hash, name) VALUES (?, ?, ?)`)
	if err != nil {
		return models.User{}, err
	}
	defer stmt.Close()

	res, err := stmt.Exec(email, string(hash), nullableString(name))
	if err != nil {
		if isDuplicateEntry(err) {
			return models.User{}, apperror.Conflict("Email already registered")
		}
		return models.User{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.User{}, err
	}

	return models.User{ID: id, Email: email, Name: name}, nil
}

// Authenticate verifies a user's credentials. An unknown email and a wrong
// password both return the same invalid-credentials error, so the response
// never reveals which part was wrong.
func (s *UserService) Authenticate(email, password string) (models.User, error) {
	var user models.User
	var name sql.NullString

	row := s.db.QueryRow(`SELECT id, email, password_hash, name FROM users WHERE email = ?`, email)
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &name)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, apperror.InvalidCredentials()
		}
		return models.User{}, err
	}
	if name.Valid {
		user.Name = &name.String
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, apperror.InvalidCredentials()
	}

	// Don't send the password hash to the client
	user.PasswordHash = ""
	return user, nil
}

func isDuplicateEntry(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry
}

func nullableString(v *string) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
