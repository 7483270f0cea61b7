package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"fermentlog-backend/application/ports"
	"fermentlog-backend/domain/model"
	apperrors "fermentlog-backend/pkg/errors"
)

// RegisterDeviceInput is the payload for registering a push device.
// Re-registering an existing deviceId replaces the stored token.
type RegisterDeviceInput struct {
	DeviceID  string `json:"deviceId" validate:"required,min=1,max=100"`
	Platform  string `json:"platform" validate:"required,oneof=ios android web"`
	PushToken string `json:"pushToken" validate:"required,min=1,max=4096"`
}

// DeviceService manages the caller's push-notification devices.
type DeviceService struct {
	devices ports.DeviceRepository
	logger  *zap.Logger
}

// NewDeviceService creates a DeviceService.
func NewDeviceService(devices ports.DeviceRepository, logger *zap.Logger) *DeviceService {
	return &DeviceService{devices: devices, logger: logger}
}

// RegisterDevice upserts the (user, deviceId) row.
func (s *DeviceService) RegisterDevice(ctx context.Context, userID string, input RegisterDeviceInput) (*model.Device, error) {
	device := &model.Device{
		DeviceID:  input.DeviceID,
		UserID:    userID,
		Platform:  input.Platform,
		PushToken: input.PushToken,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.devices.PutDevice(ctx, device); err != nil {
		return nil, apperrors.Wrap(err, "failed to register device")
	}

	s.logger.Info("device registered",
		zap.String("deviceId", device.DeviceID),
		zap.String("userId", userID),
		zap.String("platform", device.Platform),
	)
	return device, nil
}

// ListDevices returns the caller's registered devices.
func (s *DeviceService) ListDevices(ctx context.Context, userID string) ([]model.Device, error) {
	devices, err := s.devices.ListDevices(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list devices")
	}
	return devices, nil
}

// DeleteDevice hard-deletes one device row. Unknown device ids are not an
// error.
func (s *DeviceService) DeleteDevice(ctx context.Context, userID, deviceID string) error {
	if err := s.devices.DeleteDevice(ctx, userID, deviceID); err != nil {
		return apperrors.Wrap(err, "failed to delete device")
	}
	return nil
}
