package service

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"path"
	"strings"

	"github.com/reco-ai/knowledge-be/types"
)

const relationshipNS = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

// extractFromDOCX walks word/document.xml in document order: paragraph by
// paragraph, run by run. A run with an embedded drawing contributes one
// placeholder per image at that exact run position, interleaved with literal
// run text, so this path preserves true inline ordering.
func (s *ExtractService) extractFromDOCX(filePath string) (string, []types.ExtractedImage, error) {
	log.Println("Extracting from DOCX:", filePath)
	reader, err := zip.OpenReader(filePath)
	if err != nil {
		return "", nil, fmt.Errorf("failed to open docx archive: %w", err)
	}
	defer reader.Close()

	parts := make(map[string]*zip.File, len(reader.File))
	for _, f := range reader.File {
		parts[f.Name] = f
	}

	rels, err := readDocxRelationships(parts)
	if err != nil {
		return "", nil, err
	}

	docPart, ok := parts["word/document.xml"]
	if !ok {
		return "", nil, fmt.Errorf("docx archive has no word/document.xml")
	}
	doc, err := docPart.Open()
	if err != nil {
		return "", nil, fmt.Errorf("failed to open word/document.xml: %w", err)
	}
	defer doc.Close()

	stem := GetFileNameWithoutExt(filePath)
	var text strings.Builder
	var extracted []types.ExtractedImage
	imgCounter := 0

	decoder := xml.NewDecoder(doc)
	inText := false
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", nil, fmt.Errorf("failed to parse word/document.xml: %w", err)
		}

		switch elem := token.(type) {
		case xml.StartElement:
			switch elem.Name.Local {
			case "t":
				inText = true
			case "blip":
				rID := ""
				for _, attr := range elem.Attr {
					if attr.Name.Local == "embed" && attr.Name.Space == relationshipNS {
						rID = attr.Value
					}
				}
				target, ok := rels[rID]
				if rID == "" || !ok {
					continue
				}
				data, ext, err := readDocxImagePart(parts, target)
				if err != nil {
					log.Printf("Warning: failed to read image part %s: %v", target, err)
					continue
				}
				imgCounter++
				filename := fmt.Sprintf("docx_%s_img%d.%s", stem, imgCounter, ext)
				text.WriteString("\n" + PlaceholderToken(filename) + "\n")
				extracted = append(extracted, types.ExtractedImage{
					Filename: filename,
					Data:     data,
				})
			}
		case xml.EndElement:
			switch elem.Name.Local {
			case "t":
				inText = false
			case "p":
				text.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				text.Write(elem)
			}
		}
	}

	log.Printf("Extracted %d images from %s", len(extracted), filePath)
	return text.String(), extracted, nil
}

// readDocxRelationships maps relationship ids to their image part targets.
func readDocxRelationships(parts map[string]*zip.File) (map[string]string, error) {
	relsPart, ok := parts["word/_rels/document.xml.rels"]
	if !ok {
		return map[string]string{}, nil
	}
	r, err := relsPart.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open document relationships: %w", err)
	}
	defer r.Close()

	var rels struct {
		Relationships []struct {
			ID     string `xml:"Id,attr"`
			Type   string `xml:"Type,attr"`
			Target string `xml:"Target,attr"`
		} `xml:"Relationship"`
	}
	if err := xml.NewDecoder(r).Decode(&rels); err != nil {
		return nil, fmt.Errorf("failed to parse document relationships: %w", err)
	}

	result := make(map[string]string)
	for _, rel := range rels.Relationships {
		if strings.Contains(rel.Type, "image") || strings.Contains(rel.Target, "media/") {
			result[rel.ID] = rel.Target
		}
	}
	return result, nil
}

// readDocxImagePart reads the image bytes for a relationship target like
// "media/image1.png" and returns the bytes plus a normalized extension.
func readDocxImagePart(parts map[string]*zip.File, target string) ([]byte, string, error) {
	name := path.Clean("word/" + strings.TrimPrefix(target, "/"))
	part, ok := parts[name]
	if !ok {
		// Some producers store absolute targets
		part, ok = parts[strings.TrimPrefix(target, "/")]
		if !ok {
			return nil, "", fmt.Errorf("image part %s not found in archive", target)
		}
	}
	r, err := part.Open()
	if err != nil {
		return nil, "", err
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", err
	}
	ext := strings.TrimPrefix(path.Ext(target), ".")
	if ext == "jpeg" {
		ext = "jpg"
	}
	if ext == "" {
		ext = "png"
	}
	return data, ext, nil
}
