package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository        *UserRepository
	ProfileRepository     *ProfileRepository
	CourseRepository      *CourseRepository
	EnrollmentRepository  *EnrollmentRepository
	CertificateRepository *CertificateRepository
	ReportRepository      *ReportRepository
	SessionRepository     *SessionRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:        NewUserRepository(db),
		ProfileRepository:     NewProfileRepository(db),
		CourseRepository:      NewCourseRepository(db),
		EnrollmentRepository:  NewEnrollmentRepository(db),
		CertificateRepository: NewCertificateRepository(db),
		ReportRepository:      NewReportRepository(db),
		SessionRepository:     NewSessionRepository(db),
	}
}
