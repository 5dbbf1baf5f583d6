package service

import (
	"bufio"
	"bytes"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/reco-ai/knowledge-be/types"
)

// extractFromPDF walks the document page by page with the poppler tools.
// For each page, the page text is appended first and the page's image
// placeholders after it, in the images' enumeration order on that page.
// True inline position within a page is not recoverable from page-level
// extraction, so page-text-then-page-images is an accepted approximation of
// the visual interleaving.
func (s *ExtractService) extractFromPDF(filePath string) (string, []types.ExtractedImage, error) {
	log.Println("Extracting from PDF:", filePath)
	totalPages, err := getNumPages(filePath)
	if err != nil {
		return "", nil, err
	}

	stem := GetFileNameWithoutExt(filePath)
	var text strings.Builder
	var extracted []types.ExtractedImage

	for pageNum := 1; pageNum <= totalPages; pageNum++ {
		pageText, err := extractPageText(filePath, pageNum)
		if err != nil {
			log.Printf("Warning: failed to extract text from page %d: %v", pageNum, err)
		} else {
			text.WriteString(cleanText(pageText))
			text.WriteString("\n")
		}

		pageImages, err := extractPageImages(filePath, pageNum)
		if err != nil {
			log.Printf("Warning: failed to extract images from page %d: %v", pageNum, err)
			continue
		}
		for imgIndex, img := range pageImages {
			filename := fmt.Sprintf("pdf_%s_p%d_img%d.%s", stem, pageNum, imgIndex+1, img.ext)
			text.WriteString("\n" + PlaceholderToken(filename) + "\n")
			extracted = append(extracted, types.ExtractedImage{
				Filename: filename,
				Data:     img.data,
			})
		}
	}

	log.Printf("Extracted %d images from %s", len(extracted), filePath)
	return text.String(), extracted, nil
}

type pageImage struct {
	ext  string
	data []byte
}

// extractPageText extracts text from a single page using pdftotext
func extractPageText(filePath string, pageNumber int) (string, error) {
	cmd := exec.Command("pdftotext", "-f", strconv.Itoa(pageNumber),
		"-l", strconv.Itoa(pageNumber),
		"-enc", "UTF-8", "-nopgbrk",
		filePath, "-")
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("error running pdftotext for page %d: %v", pageNumber, err)
	}
	return out.String(), nil
}

// extractPageImages dumps the embedded images of a single page into a temp
// directory with pdfimages and reads them back in dump order, which matches
// the images' enumeration order on the page.
func extractPageImages(filePath string, pageNumber int) ([]pageImage, error) {
	tempDir, err := os.MkdirTemp("", "pdfimages")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	prefix := filepath.Join(tempDir, "img")
	cmd := exec.Command("pdfimages",
		"-f", strconv.Itoa(pageNumber),
		"-l", strconv.Itoa(pageNumber),
		"-all", filePath, prefix)
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("error running pdfimages for page %d: %v", pageNumber, err)
	}

	files, err := filepath.Glob(prefix + "-*")
	if err != nil {
		return nil, fmt.Errorf("failed to read image files: %w", err)
	}
	sort.Strings(files)

	var images []pageImage
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			log.Printf("Warning: failed to read extracted image %s: %v", file, err)
			continue
		}
		ext := strings.TrimPrefix(filepath.Ext(file), ".")
		if ext == "jpeg" {
			ext = "jpg"
		}
		images = append(images, pageImage{ext: ext, data: data})
	}
	return images, nil
}

// getNumPages uses pdfinfo to get the total number of pages in a PDF file
func getNumPages(pdfPath string) (int, error) {
	cmd := exec.Command("pdfinfo", pdfPath)
	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("error running pdfinfo: %v", err)
	}

	scanner := bufio.NewScanner(&out)
	re := regexp.MustCompile(`Pages:\s+(\d+)`)
	for scanner.Scan() {
		line := scanner.Text()
		if matches := re.FindStringSubmatch(line); len(matches) == 2 {
			return strconv.Atoi(matches[1])
		}
	}

	return 0, fmt.Errorf("unable to determine page count from pdfinfo")
}
