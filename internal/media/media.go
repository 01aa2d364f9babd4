// Package media uploads avatars and attachments through the console API.
package media

import (
	"context"
	"io"

	"go.uber.org/zap"

	"commerce-admin-console/client/internal/api"
)

// Media is one stored attachment record returned by the upload endpoints.
type Media struct {
	ID          string `json:"id"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"`
	URL         string `json:"url,omitempty"`
	CompanyID   string `json:"company_id,omitempty"`
	UserID      string `json:"user_id,omitempty"`
	Ref         string `json:"ref,omitempty"`
	RefID       string `json:"ref_id,omitempty"`
	VideoURL    string `json:"video_url,omitempty"`
}

// Upload carries the metadata attached to an uploaded file.
type Upload struct {
	Title       string
	Description string
	Type        string
	CompanyID   string
	UserID      string
	Ref         string
	RefID       string
	VideoURL    string
}

// Service wraps the media endpoints.
type Service struct {
	client *api.Client
	log    *zap.Logger
}

// NewService returns a media Service over the given API client.
func NewService(client *api.Client, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{client: client, log: log}
}

// UploadAvatar replaces the signed-in user's avatar image.
func (s *Service) UploadAvatar(ctx context.Context, fileName string, file io.Reader) (Media, error) {
	var out Media
	if err := s.client.PostMultipart(ctx, "/users/avatar/", "file", fileName, file, nil, &out); err != nil {
		return Media{}, err
	}
	s.log.Info("avatar uploaded", zap.String("file", fileName))
	return out, nil
}

// UploadMedia stores an attachment together with its metadata.
func (s *Service) UploadMedia(ctx context.Context, fileName string, file io.Reader, meta Upload) (Media, error) {
	fields := map[string]string{
		"title":       meta.Title,
		"description": meta.Description,
		"type":        meta.Type,
		"company_id":  meta.CompanyID,
		"user_id":     meta.UserID,
		"ref":         meta.Ref,
		"ref_id":      meta.RefID,
		"video_url":   meta.VideoURL,
	}
	var out Media
	if err := s.client.PostMultipart(ctx, "/media/upload", "file", fileName, file, fields, &out); err != nil {
		return Media{}, err
	}
	s.log.Info("media uploaded", zap.String("file", fileName), zap.String("id", out.ID))
	return out, nil
}

// Delete removes a stored attachment.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.client.Put(ctx, "/media/delete/"+id, map[string]string{"id": id}, nil)
}
