package service

import (
	"github.com/weatherwidget/backend/internal/domain"
)

// CityStore is re-exported from domain for convenience
type CityStore = domain.CityStore
