package service

import (
	"lexi_backend/internal/repository"
)

type DashboardService struct {
	UserRepo     *repository.UserRepository
	MaterialRepo *repository.MaterialRepository
	QuizRepo     *repository.QuizRepository
	AttemptRepo  *repository.AttemptRepository
}

func NewDashboardService(userRepo *repository.UserRepository, materialRepo *repository.MaterialRepository, quizRepo *repository.QuizRepository, attemptRepo *repository.AttemptRepository) *DashboardService {
	return &DashboardService{
		UserRepo:     userRepo,
		MaterialRepo: materialRepo,
		QuizRepo:     quizRepo,
		AttemptRepo:  attemptRepo,
	}
}

type AdminStats struct {
	TotalUsers       int64 `json:"totalUsers"`
	ActiveMaterials  int64 `json:"activeMaterials"`
	AvailableQuizzes int64 `json:"availableQuizzes"`
}

func (s *DashboardService) AdminStats() (*AdminStats, error) {
	users, err := s.UserRepo.Count()
	if err != nil {
		return nil, err
	}
	materials, err := s.MaterialRepo.CountPublished()
	if err != nil {
		return nil, err
	}
	quizzes, err := s.QuizRepo.CountPublished()
	if err != nil {
		return nil, err
	}
	return &AdminStats{
		TotalUsers:       users,
		ActiveMaterials:  materials,
		AvailableQuizzes: quizzes,
	}, nil
}

// UserAttempts lists the user's own attempts, newest first.
func (s *DashboardService) UserAttempts(userID uint) ([]repository.UserAttemptRow, error) {
	return s.AttemptRepo.ListByUser(userID)
}
