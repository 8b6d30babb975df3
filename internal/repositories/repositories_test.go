package repositories

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	mock.MatchExpectationsInOrder(false)

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return db, mock
}

func TestJobRepositoryFindByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewJobRepository(db)

	jobID := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "title", "description", "status"}).
		AddRow(jobID, "Staff Nurse", "Hospital staff nurse.", "ACTIVE")
	mock.ExpectQuery(`SELECT \* FROM "job_postings"`).WillReturnRows(rows)

	job, err := repo.FindByID(jobID)
	require.NoError(t, err)
	assert.Equal(t, "Staff Nurse", job.Title)
}

func TestJobRepositoryFindByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewJobRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "job_postings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByID(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestJobRepositoryFindMandatoryCriteria(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewJobRepository(db)

	rows := sqlmock.NewRows([]string{"criteria"}).
		AddRow("BSN degree").
		AddRow("Valid nursing license")
	mock.ExpectQuery(`FROM "mandatory_criteria"`).WillReturnRows(rows)

	criteria, err := repo.FindMandatoryCriteria(uuid.New())
	require.NoError(t, err)
	assert.Equal(t, []string{"BSN degree", "Valid nursing license"}, criteria)
}

func TestJobRepositoryFindExpectedDocuments(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewJobRepository(db)

	rows := sqlmock.NewRows([]string{"name"}).
		AddRow("Resume").
		AddRow("Diploma")
	mock.ExpectQuery(`FROM job_requirements jr`).WillReturnRows(rows)

	names, err := repo.FindExpectedDocuments(uuid.New())
	require.NoError(t, err)
	assert.Equal(t, []string{"Resume", "Diploma"}, names)
}

func TestApplicationRepositoryFindByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewApplicationRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "job_applications"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByID(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestApplicationRepositoryFindAttachments(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewApplicationRepository(db)

	rows := sqlmock.NewRows([]string{"file_url", "file_name", "requirement_name"}).
		AddRow("https://cdn.example.com/resume.pdf", "resume.pdf", "Resume").
		AddRow("https://cdn.example.com/extra.pdf", nil, nil)
	mock.ExpectQuery(`FROM application_attachments aa`).WillReturnRows(rows)

	attachments, err := repo.FindAttachments(uuid.New())
	require.NoError(t, err)
	require.Len(t, attachments, 2)

	assert.Equal(t, "https://cdn.example.com/resume.pdf", attachments[0].FileURL)
	require.NotNil(t, attachments[0].RequirementName)
	assert.Equal(t, "Resume", *attachments[0].RequirementName)

	// Attachments not tied to a requirement keep nil labels.
	assert.Nil(t, attachments[1].RequirementName)
	assert.Nil(t, attachments[1].FileName)
}

func TestApplicationRepositoryFindUnscreened(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewApplicationRepository(db)

	first := uuid.New()
	second := uuid.New()
	rows := sqlmock.NewRows([]string{"id"}).AddRow(first).AddRow(second)
	mock.ExpectQuery(`LEFT JOIN ai_analyses`).WillReturnRows(rows)

	ids, err := repo.FindUnscreened(10)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{first, second}, ids)
}

func TestAnalysisRepositoryFindByApplicationID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAnalysisRepository(db)

	applicationID := uuid.New()
	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "job_application_id", "result_json", "analysis", "score", "created_at"}).
		AddRow(uuid.New(), applicationID, `{"score":78,"status":"QUALIFIED"}`, "Meets criteria.", 78, now).
		AddRow(uuid.New(), applicationID, `{"score":40,"status":"WAITLISTED"}`, "Earlier run.", 40, now.Add(-time.Hour))
	mock.ExpectQuery(`SELECT \* FROM "ai_analyses"`).WillReturnRows(rows)

	analyses, err := repo.FindByApplicationID(applicationID)
	require.NoError(t, err)
	require.Len(t, analyses, 2)
	assert.Equal(t, 78, analyses[0].Score)
	assert.Equal(t, applicationID, analyses[0].JobApplicationID)
}

func TestAnalysisRepositoryFindLatestNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAnalysisRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "ai_analyses"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindLatestByApplicationID(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
