package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/reco-ai/knowledge-be/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingImageStore struct{}

func (failingImageStore) Store(ctx context.Context, filename string, data []byte) (string, error) {
	return "", errors.New("bucket unavailable")
}

type failingDescriber struct{}

func (failingDescriber) Describe(ctx context.Context, filename string, data []byte) (string, error) {
	return "", errors.New("model offline")
}

// parseAnnotation pulls the single [image_info] payload out of annotated text.
func parseAnnotation(t *testing.T, text string) types.ImageAnnotation {
	t.Helper()
	start := strings.Index(text, "[image_info]")
	end := strings.Index(text, "[/image_info]")
	require.GreaterOrEqual(t, start, 0)
	require.Greater(t, end, start)

	var annotation types.ImageAnnotation
	require.NoError(t, json.Unmarshal([]byte(text[start+len("[image_info]"):end]), &annotation))
	return annotation
}

func TestAnnotateResolvesPlaceholder(t *testing.T) {
	s := NewAnnotateService(NewMockImageStore(), NewMockDescriber())
	img := types.ExtractedImage{Filename: "docx_manual_img1.png", Data: []byte{0x89}}
	text := "Intro.\n" + PlaceholderToken(img.Filename) + "\nOutro."

	annotated, err := s.Annotate(context.Background(), text, []types.ExtractedImage{img})
	require.NoError(t, err)
	assert.NotContains(t, annotated, "[image_placeholder:")
	assert.True(t, strings.HasPrefix(annotated, "Intro.\n"))
	assert.True(t, strings.HasSuffix(annotated, "\nOutro."))

	annotation := parseAnnotation(t, annotated)
	assert.Equal(t, "A mock description for the provided image.", annotation.Description)
	assert.Equal(t, "https://fake-bucket.s3.amazonaws.com/images/docx_manual_img1.png", annotation.ImgPath)
}

func TestAnnotateNoImagesLeavesTextUnchanged(t *testing.T) {
	s := NewAnnotateService(NewMockImageStore(), NewMockDescriber())
	text := "Nothing to resolve here."
	annotated, err := s.Annotate(context.Background(), text, nil)
	require.NoError(t, err)
	assert.Equal(t, text, annotated)
}

func TestAnnotateMissingPlaceholderFails(t *testing.T) {
	s := NewAnnotateService(NewMockImageStore(), NewMockDescriber())
	img := types.ExtractedImage{Filename: "pdf_doc_p1_img1.png"}

	_, err := s.Annotate(context.Background(), "text without a token", []types.ExtractedImage{img})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrUnresolvedPlaceholder)
}

func TestAnnotateResidualPlaceholderFails(t *testing.T) {
	s := NewAnnotateService(NewMockImageStore(), NewMockDescriber())
	img := types.ExtractedImage{Filename: "pdf_doc_p1_img1.png"}
	// one token for the listed image plus one the image list knows nothing about
	text := PlaceholderToken(img.Filename) + "\n" + PlaceholderToken("pdf_doc_p2_img1.png")

	_, err := s.Annotate(context.Background(), text, []types.ExtractedImage{img})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrUnresolvedPlaceholder)
}

func TestAnnotateStoreFailureDegrades(t *testing.T) {
	s := NewAnnotateService(failingImageStore{}, NewMockDescriber())
	img := types.ExtractedImage{Filename: "docx_doc_img1.png"}

	annotated, err := s.Annotate(context.Background(), PlaceholderToken(img.Filename), []types.ExtractedImage{img})
	require.NoError(t, err)

	annotation := parseAnnotation(t, annotated)
	assert.True(t, strings.HasPrefix(annotation.Description, "Error storing image:"))
	assert.Empty(t, annotation.ImgPath)
}

func TestAnnotateDescribeFailureDegrades(t *testing.T) {
	s := NewAnnotateService(NewMockImageStore(), failingDescriber{})
	img := types.ExtractedImage{Filename: "docx_doc_img1.png"}

	annotated, err := s.Annotate(context.Background(), PlaceholderToken(img.Filename), []types.ExtractedImage{img})
	require.NoError(t, err)

	annotation := parseAnnotation(t, annotated)
	assert.True(t, strings.HasPrefix(annotation.Description, "Error describing image:"))
	assert.Equal(t, "https://fake-bucket.s3.amazonaws.com/images/docx_doc_img1.png", annotation.ImgPath)
}

func TestAnnotateResolvesEachPlaceholderOnce(t *testing.T) {
	s := NewAnnotateService(NewMockImageStore(), NewMockDescriber())
	images := []types.ExtractedImage{
		{Filename: "docx_doc_img1.png"},
		{Filename: "docx_doc_img2.jpg"},
	}
	text := "a\n" + PlaceholderToken(images[0].Filename) + "\nb\n" + PlaceholderToken(images[1].Filename) + "\nc"

	annotated, err := s.Annotate(context.Background(), text, images)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(annotated, "[image_info]"))
	assert.Equal(t, 2, strings.Count(annotated, "[/image_info]"))
	assert.NotContains(t, annotated, "[image_placeholder:")
}
