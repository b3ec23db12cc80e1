package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/jpeg"
	"log/slog"
	"strings"

	_ "image/gif"
	_ "image/png"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"golang.org/x/image/draw"

	"github.com/vitrineapp/vitrine"
	"github.com/vitrineapp/vitrine/internal/domain"
)

var tracer = otel.Tracer("media")

// MediaNormalizer turns raw uploads into bounded, embeddable media assets.
// One shared implementation serves the store media, product gallery and
// ticket attachment call sites, parameterized by profile.
type MediaNormalizer struct{}

func NewMediaNormalizer() *MediaNormalizer {
	return &MediaNormalizer{}
}

func (n *MediaNormalizer) Normalize(ctx context.Context, upload domain.Upload, profile domain.MediaProfile) (vitrine.MediaAsset, error) {
	ctx, span := tracer.Start(ctx, "Media.Service.Normalize")
	defer span.End()

	switch {
	case strings.HasPrefix(upload.ContentType, "image/"):
		return n.normalizeImage(ctx, upload, profile)
	case strings.HasPrefix(upload.ContentType, "video/"):
		return n.passthroughVideo(upload), nil
	default:
		err := domain.MediaRejectedError{Filename: upload.Filename, Reason: "unsupported content type " + upload.ContentType}
		span.RecordError(err)
		return vitrine.MediaAsset{}, err
	}
}

func (n *MediaNormalizer) normalizeImage(ctx context.Context, upload domain.Upload, profile domain.MediaProfile) (vitrine.MediaAsset, error) {
	_, span := tracer.Start(ctx, "Media.Service.NormalizeImage")
	defer span.End()

	src, _, err := image.Decode(bytes.NewReader(upload.Data))
	if err != nil {
		rejection := domain.MediaRejectedError{Filename: upload.Filename, Reason: "decode failed"}
		span.RecordError(errors.Wrap(err, "image decode failed"))
		return vitrine.MediaAsset{}, rejection
	}

	scaled := scaleDown(src, profile.MaxEdge)
	bounds := scaled.Bounds()

	// Walk the quality ladder until the encoding fits the budget or the
	// floor is reached. The floor result is accepted even when still over
	// budget: an oversized upload never blocks the operator's workflow.
	var buf bytes.Buffer
	quality := profile.StartQuality
	for {
		buf.Reset()
		if err := jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: quality}); err != nil {
			span.RecordError(errors.Wrap(err, "jpeg encode failed"))
			return vitrine.MediaAsset{}, domain.MediaRejectedError{Filename: upload.Filename, Reason: "encode failed"}
		}
		if buf.Len() <= profile.MaxBytes || quality <= profile.MinQuality {
			break
		}
		quality -= profile.QualityStep
		if quality < profile.MinQuality {
			quality = profile.MinQuality
		}
	}

	if buf.Len() > profile.MaxBytes {
		slog.Warn(
			"media accepted over budget at quality floor",
			slog.String("file", upload.Filename),
			slog.String("profile", profile.Name),
			slog.Int("bytes", buf.Len()),
			slog.Int("budget", profile.MaxBytes),
		)
	}

	return vitrine.MediaAsset{
		ID:     vitrine.AssetID(buf.Bytes()),
		Kind:   vitrine.MediaImage,
		MIME:   "image/jpeg",
		Data:   base64.StdEncoding.EncodeToString(buf.Bytes()),
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}

// passthroughVideo embeds the video bytes unchanged. No resizing or
// transcoding happens here; only images go through the compression loop.
func (n *MediaNormalizer) passthroughVideo(upload domain.Upload) vitrine.MediaAsset {
	return vitrine.MediaAsset{
		ID:   vitrine.AssetID(upload.Data),
		Kind: vitrine.MediaVideo,
		MIME: upload.ContentType,
		Data: base64.StdEncoding.EncodeToString(upload.Data),
	}
}

// scaleDown shrinks the image uniformly so its longer edge fits maxEdge.
// Images already within bounds are returned untouched; nothing is ever
// upscaled.
func scaleDown(src image.Image, maxEdge int) image.Image {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	longest := w
	if h > longest {
		longest = h
	}
	if maxEdge <= 0 || longest <= maxEdge {
		return src
	}

	var dw, dh int
	if w >= h {
		dw = maxEdge
		dh = h * maxEdge / w
	} else {
		dh = maxEdge
		dw = w * maxEdge / h
	}
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
	return dst
}
