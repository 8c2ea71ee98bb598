package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/tpc3/MisskeyIntegrate/internal/discord"
	"github.com/tpc3/MisskeyIntegrate/internal/metrics"
	"github.com/tpc3/MisskeyIntegrate/internal/misskey"
)

// createAd runs the ad-creation flow for a validated /misskey ads create
// command: extract and validate options, optionally re-host the image on the
// instance's drive, then create the advertisement record. Every outcome is a
// chat message; nothing propagates to the transport layer.
func (h *Handler) createAd(ctx context.Context, in *discord.Interaction, options []discord.Option) discord.Response {
	var targetURL string
	var image *discord.Attachment
	place := h.cfg.Ad.Place

	// Unordered scan; unrecognized option names are ignored.
	for _, opt := range options {
		switch opt.Name {
		case "url":
			if s, ok := opt.StringValue(); ok {
				targetURL = s
			}
		case "image":
			key, ok := opt.AttachmentKey()
			if !ok || in.Data.Resolved == nil {
				continue
			}
			if att, found := in.Data.Resolved.Attachments[key]; found {
				image = &att
			}
		case "form":
			if s, ok := opt.StringValue(); ok && s != "" {
				place = s
			}
		}
	}

	if targetURL == "" || image == nil {
		metrics.InteractionsTotal.WithLabelValues("invalid_options").Inc()
		return discord.Message("Invalid options")
	}
	if u, err := url.Parse(targetURL); err != nil || !u.IsAbs() {
		metrics.InteractionsTotal.WithLabelValues("invalid_options").Inc()
		return discord.Message("url is not valid url")
	}
	if !strings.HasPrefix(image.ContentType, "image") {
		metrics.InteractionsTotal.WithLabelValues("invalid_options").Inc()
		return discord.Message("attachment is not image")
	}

	imageURL := image.URL
	if h.cfg.Ad.ReuploadImage {
		uploaded, err := h.reuploadImage(ctx, image.URL)
		if err != nil {
			h.logger.Error().Err(err).Str("attachment_url", image.URL).Msg("image reupload failed")
			metrics.InteractionsTotal.WithLabelValues("upstream_error").Inc()
			return discord.Message("Failed to upload image: " + upstreamDetail(err))
		}
		imageURL = uploaded.URL
	}

	memo := fmt.Sprintf("made by MisskeyIntegrate\nRequested by %s(%s)", in.Username(), in.UserID())
	err := h.misskey.CreateAd(ctx, misskey.Ad{
		URL:      targetURL,
		ImageURL: imageURL,
		Place:    place,
		Memo:     memo,
	})
	if err != nil {
		h.logger.Error().Err(err).Str("url", targetURL).Msg("ad creation failed")
		metrics.InteractionsTotal.WithLabelValues("upstream_error").Inc()
		return discord.Message("Failed to create ads: " + upstreamDetail(err))
	}

	h.logger.Info().Str("url", targetURL).Str("place", place).Str("requester", in.UserID()).Msg("ad created")
	metrics.InteractionsTotal.WithLabelValues("ad_created").Inc()
	return discord.Message("Ads created successfully!")
}

// reuploadImage fetches the attachment bytes and submits them to the
// instance's drive, returning the re-hosted file.
func (h *Handler) reuploadImage(ctx context.Context, attachmentURL string) (*misskey.DriveFile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, attachmentURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := h.httpCli.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching attachment: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching attachment: %s", resp.Status)
	}
	file, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading attachment: %w", err)
	}

	return h.misskey.UploadFile(ctx, h.cfg.Misskey.FolderID, uuid.NewString(), file)
}

// upstreamDetail formats an upstream failure for the chat reply, embedding
// the status line and response body when the API returned one.
func upstreamDetail(err error) string {
	var se *misskey.StatusError
	if errors.As(err, &se) {
		return fmt.Sprintf("%s\n%s", se.Status, se.Body)
	}
	return err.Error()
}
