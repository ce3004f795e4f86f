package youtube

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"playlist-insights/internal/models"
	"playlist-insights/shared/apperrors"
	"playlist-insights/shared/config"
)

const (
	serviceName = "youtube"

	// Maximum page size for playlistItems.list and id count for videos.list.
	pageSize  = 50
	batchSize = 50
)

// Client reads playlist and video metadata from the YouTube Data API v3.
type Client struct {
	service *youtube.Service
	limiter *rate.Limiter
	logger  *zap.Logger
}

func NewClient(ctx context.Context, cfg *config.YouTubeConfig, logger *zap.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, apperrors.NewValidationError("Please provide a YouTube Data API key.", "api_key", "")
	}

	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	return newClient(ctx, cfg.RequestsPerSecond, logger, opts...)
}

func newClient(ctx context.Context, requestsPerSecond float64, logger *zap.Logger, opts ...option.ClientOption) (*Client, error) {
	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}

	return &Client{
		service: service,
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger,
	}, nil
}

// PlaylistDetails looks up the playlist's snippet. It returns nil without an
// error when the API knows no playlist with that id.
func (c *Client) PlaylistDetails(ctx context.Context, playlistID string) (*models.PlaylistSummary, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("playlist lookup cancelled: %w", err)
	}

	response, err := c.service.Playlists.List([]string{"snippet"}).
		Id(playlistID).
		Context(ctx).
		Do()
	if err != nil {
		return nil, remoteError("playlists.list", err)
	}

	if len(response.Items) == 0 || response.Items[0].Snippet == nil {
		c.logger.Debug("Playlist lookup returned no match", zap.String("playlist", playlistID))
		return nil, nil
	}

	snippet := response.Items[0].Snippet
	return &models.PlaylistSummary{
		ID:           playlistID,
		Title:        snippet.Title,
		ChannelTitle: snippet.ChannelTitle,
		Description:  snippet.Description,
	}, nil
}

// PlaylistItems returns the video id of every playlist entry, in playlist
// order, following page tokens until the listing is exhausted.
func (c *Client) PlaylistItems(ctx context.Context, playlistID string) ([]string, error) {
	page := 0
	ids, err := collectPages(ctx, func(ctx context.Context, token string) ([]string, string, error) {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, "", fmt.Errorf("playlist listing cancelled: %w", err)
		}

		call := c.service.PlaylistItems.List([]string{"contentDetails"}).
			PlaylistId(playlistID).
			MaxResults(pageSize)
		if token != "" {
			call = call.PageToken(token)
		}

		response, err := call.Context(ctx).Do()
		if err != nil {
			return nil, "", remoteError("playlistItems.list", err)
		}

		page++
		ids := make([]string, 0, len(response.Items))
		for _, item := range response.Items {
			if item.ContentDetails == nil || item.ContentDetails.VideoId == "" {
				c.logger.Debug("Skipping playlist item without video id", zap.String("item", item.Id))
				continue
			}
			ids = append(ids, item.ContentDetails.VideoId)
		}

		c.logger.Debug("Fetched playlist page",
			zap.String("playlist", playlistID),
			zap.Int("page", page),
			zap.Int("items", len(ids)),
			zap.Bool("more", response.NextPageToken != ""))

		return ids, response.NextPageToken, nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("Playlist items fetched",
		zap.String("playlist", playlistID),
		zap.Int("pages", page),
		zap.Int("items", len(ids)))

	return ids, nil
}

// VideoDetails fetches snippet, contentDetails and statistics for ids in
// chunks of 50. The whole batch is atomic: one failing chunk fails the call.
func (c *Client) VideoDetails(ctx context.Context, ids []string) ([]*models.VideoRecord, error) {
	videos, err := fetchBatched(ctx, ids, batchSize, func(ctx context.Context, chunk []string) ([]*models.VideoRecord, error) {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("video lookup cancelled: %w", err)
		}

		response, err := c.service.Videos.List([]string{"contentDetails", "snippet", "statistics"}).
			Id(chunk...).
			Context(ctx).
			Do()
		if err != nil {
			return nil, remoteError("videos.list", err)
		}

		records := make([]*models.VideoRecord, 0, len(response.Items))
		for _, item := range response.Items {
			records = append(records, toVideoRecord(item))
		}

		c.logger.Debug("Fetched video batch",
			zap.Int("requested", len(chunk)),
			zap.Int("returned", len(records)))

		return records, nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("Video details fetched",
		zap.Int("requested", len(ids)),
		zap.Int("returned", len(videos)))

	return videos, nil
}

func toVideoRecord(item *youtube.Video) *models.VideoRecord {
	video := &models.VideoRecord{
		ID:  item.Id,
		URL: fmt.Sprintf("https://www.youtube.com/watch?v=%s", item.Id),
	}

	if item.ContentDetails != nil {
		video.Duration = item.ContentDetails.Duration
		video.DurationSeconds = ParseDuration(item.ContentDetails.Duration)
	}

	if item.Snippet != nil {
		video.Title = item.Snippet.Title
		video.ChannelTitle = item.Snippet.ChannelTitle
		if item.Snippet.Thumbnails != nil && item.Snippet.Thumbnails.Default != nil {
			video.ThumbnailURL = item.Snippet.Thumbnails.Default.Url
		}
		if publishedAt, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
			video.PublishedAt = publishedAt
		}
	}

	if item.Statistics != nil {
		video.ViewCount = item.Statistics.ViewCount
		video.LikeCount = item.Statistics.LikeCount
	}

	return video
}

// remoteError turns an API failure into a RemoteError. When the response had
// an error payload its message is used verbatim.
func remoteError(operation string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		remote := apperrors.NewRemoteError(apiErr.Message, serviceName, operation, nil)
		remote.Context["status"] = apiErr.Code
		return remote
	}

	return apperrors.NewRemoteError(fmt.Sprintf("%s failed", operation), serviceName, operation, err)
}
