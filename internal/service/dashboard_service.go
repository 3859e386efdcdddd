package service

import (
	"go-product-catalog/internal/model"
	"go-product-catalog/internal/repository"
)

type DashboardService interface {
	GetCatalogStats() (*repository.CatalogStats, error)
	GetRecentActivity(limit int) ([]model.AuditLog, error)
}

type dashboardService struct {
	productRepo repository.ProductRepository
	auditRepo   repository.AuditRepository
}

func NewDashboardService(pRepo repository.ProductRepository, aRepo repository.AuditRepository) DashboardService {
	return &dashboardService{productRepo: pRepo, auditRepo: aRepo}
}

func (s *dashboardService) GetCatalogStats() (*repository.CatalogStats, error) {
	return s.productRepo.Stats()
}

func (s *dashboardService) GetRecentActivity(limit int) ([]model.AuditLog, error) {
	return s.auditRepo.FindRecent(limit)
}
