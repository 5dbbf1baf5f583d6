package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/reco-ai/knowledge-be/types"
)

// AnnotateService resolves every image placeholder in an extracted text
// stream into an [image_info] tag carrying a durable reference and a
// description. Every placeholder must resolve before chunking; a leftover
// token fails the document instead of being dropped silently.
type AnnotateService struct {
	store     ImageStore
	describer ImageDescriber
}

func NewAnnotateService(store ImageStore, describer ImageDescriber) *AnnotateService {
	return &AnnotateService{
		store:     store,
		describer: describer,
	}
}

// Annotate replaces each placeholder token with its annotation tag, exactly
// once. Upload and description failures degrade into error-text annotations;
// they never abort the document.
func (s *AnnotateService) Annotate(ctx context.Context, text string, images []types.ExtractedImage) (string, error) {
	if len(images) == 0 {
		return text, nil
	}

	log.Printf("Describing and processing %d images...", len(images))
	for _, img := range images {
		placeholder := PlaceholderToken(img.Filename)
		if !strings.Contains(text, placeholder) {
			return "", fmt.Errorf("%w: %s", types.ErrUnresolvedPlaceholder, img.Filename)
		}

		var description string
		imgPath, err := s.store.Store(ctx, img.Filename, img.Data)
		if err != nil {
			log.Printf("Error storing image %s: %v", img.Filename, err)
			description = fmt.Sprintf("Error storing image: %v", err)
		} else {
			description, err = s.describer.Describe(ctx, img.Filename, img.Data)
			if err != nil {
				log.Printf("Error getting image description: %v", err)
				description = fmt.Sprintf("Error describing image: %v", err)
			}
		}

		info, err := json.Marshal(types.ImageAnnotation{
			Description: description,
			ImgPath:     imgPath,
		})
		if err != nil {
			return "", fmt.Errorf("failed to marshal image info: %w", err)
		}
		tag := "[image_info]" + string(info) + "[/image_info]"
		text = strings.Replace(text, placeholder, tag, 1)
	}

	// Extraction guarantees one token per image; anything left over means the
	// text stream and image list went out of sync.
	if strings.Contains(text, "[image_placeholder:") {
		return "", fmt.Errorf("%w: residual placeholder after annotation", types.ErrUnresolvedPlaceholder)
	}
	return text, nil
}
