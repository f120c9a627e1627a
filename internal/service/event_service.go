package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ozgurkara/event-gallery-backend/internal/models"
	"github.com/ozgurkara/event-gallery-backend/pkg/storage"
)

const maxImageSize = 10 * 1024 * 1024 // 10MB per file

// EventRepository is the document store surface the service needs.
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) (*models.Event, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error)
	GetAll(ctx context.Context, titleFilter string) ([]models.Event, error)
	DistinctTitles(ctx context.Context) ([]string, error)
	UpdateImages(ctx context.Context, id primitive.ObjectID, images []models.Image) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// EventService owns the event lifecycle across the document store and the
// object store. The two stores are never updated transactionally: creation
// writes the document only after every blob upload succeeded, and deletion
// removes metadata even when blob deletion fails.
type EventService struct {
	eventRepo EventRepository
	storage   storage.ObjectStorage
	logger    *zap.Logger
}

func NewEventService(eventRepo EventRepository, objectStorage storage.ObjectStorage, logger *zap.Logger) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		storage:   objectStorage,
		logger:    logger,
	}
}

// CreateEvent uploads all files concurrently, waits for every upload to
// settle, then persists the event document. If any upload fails no document
// is written; blobs that finished uploading before the failure are left
// behind as orphans.
func (s *EventService) CreateEvent(ctx context.Context, title string, date time.Time, files []*multipart.FileHeader, captions []string) (*models.Event, error) {
	for _, file := range files {
		if file.Size > maxImageSize {
			return nil, models.ErrFileTooLarge
		}
		if !isValidImageType(file.Header.Get("Content-Type")) {
			return nil, models.ErrUnsupportedFileType
		}
	}

	images := make([]models.Image, len(files))

	var g errgroup.Group
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			src, err := file.Open()
			if err != nil {
				return fmt.Errorf("open %s: %w", file.Filename, err)
			}
			defer src.Close()

			result, err := s.storage.Upload(ctx, file.Filename, src)
			if err != nil {
				return fmt.Errorf("upload %s: %w", file.Filename, err)
			}

			caption := ""
			if i < len(captions) {
				caption = captions[i]
			}

			images[i] = models.Image{
				ID:       primitive.NewObjectID(),
				URL:      result.URL,
				PublicID: result.PublicID,
				Caption:  caption,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		// blobs already stored stay behind; cleanup is out of band
		s.logger.Error("event image upload failed",
			zap.String("title", title),
			zap.Error(err))
		return nil, err
	}

	event, err := s.eventRepo.Create(ctx, models.NewEvent(title, date, images))
	if err != nil {
		s.logger.Error("failed to persist event",
			zap.String("title", title),
			zap.Error(err))
		return nil, err
	}

	return event, nil
}

// ListEvents returns all events sorted by date descending. typeFilter narrows
// the result to an exact title match; empty or "all" returns everything.
func (s *EventService) ListEvents(ctx context.Context, typeFilter string) ([]models.Event, error) {
	if typeFilter == "all" {
		typeFilter = ""
	}
	return s.eventRepo.GetAll(ctx, typeFilter)
}

// ListEventTypes returns the distinct set of event titles.
func (s *EventService) ListEventTypes(ctx context.Context) ([]string, error) {
	return s.eventRepo.DistinctTitles(ctx)
}

// DeleteImage removes one image from an event. The object store delete is
// best effort: a failure there is logged and the metadata update still runs,
// so the record always reflects the caller's intent.
func (s *EventService) DeleteImage(ctx context.Context, eventID, imageID primitive.ObjectID) error {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}

	idx := -1
	for i, img := range event.Images {
		if img.ID == imageID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return models.ErrImageNotFound
	}

	if img := event.Images[idx]; img.PublicID != "" {
		if err := s.storage.Delete(ctx, img.PublicID); err != nil {
			s.logger.Warn("failed to delete image from object store",
				zap.String("event_id", eventID.Hex()),
				zap.String("image_id", imageID.Hex()),
				zap.String("public_id", img.PublicID),
				zap.Error(err))
		}
	}

	images := make([]models.Image, 0, len(event.Images)-1)
	images = append(images, event.Images[:idx]...)
	images = append(images, event.Images[idx+1:]...)

	return s.eventRepo.UpdateImages(ctx, eventID, images)
}

// DeleteEvent removes all of the event's blobs concurrently, then the
// document. Blob deletion failures are logged and swallowed so the metadata
// always goes away.
func (s *EventService) DeleteEvent(ctx context.Context, eventID primitive.ObjectID) error {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}

	var wg sync.WaitGroup
	for _, img := range event.Images {
		if img.PublicID == "" {
			continue
		}
		wg.Add(1)
		go func(img models.Image) {
			defer wg.Done()
			if err := s.storage.Delete(ctx, img.PublicID); err != nil {
				s.logger.Warn("failed to delete image from object store",
					zap.String("event_id", eventID.Hex()),
					zap.String("public_id", img.PublicID),
					zap.Error(err))
			}
		}(img)
	}
	wg.Wait()

	return s.eventRepo.Delete(ctx, eventID)
}

func isValidImageType(contentType string) bool {
	validTypes := map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
		"image/gif":  true,
		"image/webp": true,
	}
	return validTypes[contentType]
}
