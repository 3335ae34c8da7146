package services

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/scholarhub/scholarhub-backend/internal/models"
)

// newTestDB opens an in-memory SQLite database with the schema the
// services touch. The uuid defaults in the model tags are Postgres
// expressions, so the tables are created directly; every code path sets
// ids explicitly anyway.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	ddl := []string{
		`CREATE TABLE users (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL,
			password TEXT NOT NULL,
			name TEXT,
			photo_url TEXT,
			role TEXT DEFAULT 'user',
			auth_provider TEXT DEFAULT 'email',
			google_user_id TEXT,
			last_login DATETIME,
			created_at DATETIME,
			updated_at DATETIME,
			deleted_at DATETIME
		)`,
		`CREATE UNIQUE INDEX idx_users_email ON users(email)`,
		`CREATE TABLE refresh_tokens (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			token_hash TEXT NOT NULL,
			expires_at DATETIME NOT NULL,
			revoked BOOLEAN DEFAULT 0,
			created_at DATETIME
		)`,
		`CREATE UNIQUE INDEX idx_refresh_tokens_token_hash ON refresh_tokens(token_hash)`,
		`CREATE TABLE scholarships (
			id TEXT PRIMARY KEY,
			scholarship_name TEXT NOT NULL,
			university_name TEXT NOT NULL,
			country TEXT,
			city TEXT,
			rank INTEGER,
			subject_category TEXT,
			scholarship_category TEXT,
			degree TEXT,
			tuition_fee REAL,
			application_fee REAL NOT NULL,
			service_charge REAL NOT NULL,
			deadline DATETIME,
			description TEXT,
			image TEXT,
			posted_by TEXT,
			post_date DATETIME,
			created_at DATETIME,
			updated_at DATETIME,
			deleted_at DATETIME
		)`,
		`CREATE TABLE applications (
			id TEXT PRIMARY KEY,
			scholarship_id TEXT NOT NULL,
			scholarship_name TEXT,
			university_name TEXT,
			subject_category TEXT,
			scholarship_category TEXT,
			user_id TEXT NOT NULL,
			user_name TEXT,
			user_email TEXT,
			phone_number TEXT,
			gender TEXT,
			address TEXT,
			applying_degree TEXT,
			ssc_result REAL,
			hsc_result REAL,
			study_gap TEXT,
			photo TEXT,
			status TEXT NOT NULL DEFAULT 'pending',
			feedback TEXT,
			payment TEXT,
			is_reviewed BOOLEAN DEFAULT 0,
			applied_date DATETIME,
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE TABLE reviews (
			id TEXT PRIMARY KEY,
			scholarship_id TEXT NOT NULL,
			application_id TEXT NOT NULL,
			scholarship_name TEXT,
			university_name TEXT,
			user_id TEXT NOT NULL,
			user_name TEXT,
			user_image TEXT,
			rating INTEGER NOT NULL,
			comment TEXT,
			review_date DATETIME,
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE UNIQUE INDEX idx_reviews_application_id ON reviews(application_id)`,
	}
	for _, stmt := range ddl {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, role string) *models.User {
	t.Helper()
	user := &models.User{
		ID:        uuid.New(),
		Email:     uuid.NewString() + "@example.com",
		Password:  "x",
		Name:      "Test User",
		Role:      role,
		LastLogin: time.Now(),
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedApplication(t *testing.T, db *gorm.DB, owner *models.User, status models.ApplicationStatus) *models.Application {
	t.Helper()
	app := &models.Application{
		ID:              uuid.New(),
		ScholarshipID:   uuid.New(),
		ScholarshipName: "Dean's Merit Scholarship",
		UniversityName:  "Test University",
		UserID:          owner.ID,
		UserName:        owner.Name,
		UserEmail:       owner.Email,
		PhoneNumber:     "+880 1712-345678",
		Gender:          "female",
		ApplyingDegree:  "Masters",
		SSCResult:       4.5,
		HSCResult:       4.8,
		Photo:           "https://cdn.example.com/photo.jpg",
		Status:          status,
		Payment: datatypes.NewJSONType(models.Payment{
			ApplicationFee:  40,
			ServiceCharge:   10,
			TotalPaid:       50,
			PaidAt:          time.Now(),
			PaymentIntentID: "pi_" + uuid.NewString(),
			PaymentStatus:   "succeeded",
		}),
		AppliedDate: time.Now(),
	}
	require.NoError(t, db.Create(app).Error)
	return app
}
