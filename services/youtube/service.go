package youtube

import (
	"context"
	"log"

	"academy/models"

	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"
)

const (
	// YouTube Data API category 27 is Education.
	educationCategoryID = "27"
	searchQualifier     = " Kids Educational Video"
	maxResults          = 5
)

// Service finds embeddable, medium-length educational videos for a topic
// via the YouTube Data API.
type Service struct {
	yt *yt.Service
}

func NewService(ctx context.Context, apiKey string, opts ...option.ClientOption) (*Service, error) {
	clientOpts := append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := yt.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, err
	}
	return &Service{yt: svc}, nil
}

// FindEducationalVideo returns the first qualifying search result for the
// topic, or nil when the search fails, returns no items, or the top result
// lacks an id or title. It never returns an error; a missing video is an
// expected outcome the caller assembles around.
func (s *Service) FindEducationalVideo(ctx context.Context, topic string) *models.VideoReference {
	query := topic + searchQualifier

	resp, err := s.yt.Search.List([]string{"snippet"}).
		Q(query).
		VideoDuration("medium").
		VideoEmbeddable("true").
		Type("video").
		MaxResults(maxResults).
		VideoCategoryId(educationCategoryID).
		Context(ctx).
		Do()
	if err != nil {
		log.Printf("[ERROR] YouTube search failed for %q: %v", query, err)
		return nil
	}

	if len(resp.Items) == 0 {
		log.Printf("[INFO] No YouTube results found for %q", query)
		return nil
	}

	first := resp.Items[0]
	if first.Id == nil || first.Id.VideoId == "" || first.Snippet == nil || first.Snippet.Title == "" {
		log.Printf("[INFO] Top YouTube result for %q has no video id or title", query)
		return nil
	}

	log.Printf("[INFO] Found video %s (%q) for topic %q", first.Id.VideoId, first.Snippet.Title, topic)
	return &models.VideoReference{
		VideoID:    first.Id.VideoId,
		VideoTitle: first.Snippet.Title,
	}
}
