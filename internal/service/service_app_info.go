package service

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-task-manager/internal/config"
	"github.com/MKhiriev/go-task-manager/models"
)

type appInfoService struct {
	info models.AppInfo
}

// NewAppInfoService fails with ErrVersionIsNotSpecified when cfg carries no
// version, so a server never reports an empty one.
func NewAppInfoService(cfg config.App) (AppInfoService, error) {
	version := strings.TrimSpace(cfg.Version)
	if version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{info: models.AppInfo{Version: version}}, nil
}

func (s *appInfoService) GetAppInfo(context.Context) models.AppInfo {
	return s.info
}
