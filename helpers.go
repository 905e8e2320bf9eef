package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/ledongthuc/pdf"
	"github.com/muhammadolammi/resumecritic/internal/critique"
	"github.com/nguyenthenguyen/docx"
	"github.com/streadway/amqp"
)

const (
	mimeText = "text/plain"
	mimePDF  = "application/pdf"
	mimeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

func CleanJson(input string) string {
	clean := strings.TrimSpace(input)

	// Remove opening ```json or ``` with optional newline
	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")
	clean = strings.TrimSuffix(clean, "```")

	return strings.TrimSpace(clean)
}

// --- File Download ---

func DownloadFromR2(ctx context.Context, client *s3.Client, bucket, key string) ([]byte, error) {
	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer out.Body.Close()

	buf := new(bytes.Buffer)
	_, err = io.Copy(buf, out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read object body: %w", err)
	}
	return buf.Bytes(), nil
}

// newR2Downloader returns a download function bound to the R2 bucket.
func newR2Downloader(awsConfig aws.Config, r2 R2Config) func(ctx context.Context, key string) ([]byte, error) {
	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", r2.AccountID))
	})
	return func(ctx context.Context, key string) ([]byte, error) {
		return DownloadFromR2(ctx, client, r2.Bucket, key)
	}
}

// --- Ingestion ---

// IngestOptions controls how non-text uploads become analyzable text.
type IngestOptions struct {
	// ParseDocuments extracts real text from PDF and DOCX files. When off,
	// every non-text upload is replaced by generated sample text.
	ParseDocuments bool
	Generator      *critique.Generator
}

// IngestResume turns an uploaded file into text for the analyzer.
func IngestResume(mimeType string, data []byte, opts IngestOptions) (string, error) {
	mimeType = normalizeMime(mimeType)
	if mimeType == mimeText {
		return decodeText(data), nil
	}
	if opts.ParseDocuments && (mimeType == mimePDF || mimeType == mimeDocx) {
		return ExtractResumeText(mimeType, data)
	}

	gen := opts.Generator
	if gen == nil {
		gen = critique.NewGenerator(nil)
	}
	return gen.Generate(), nil
}

func ExtractResumeText(mimeType string, data []byte) (string, error) {
	switch normalizeMime(mimeType) {
	case mimeText:
		return decodeText(data), nil

	case mimePDF:
		return extractPDFText(bytes.NewReader(data))

	case mimeDocx:
		return extractDocxText(bytes.NewReader(data))

	default:
		return "", fmt.Errorf("unsupported file type: %s", mimeType)
	}
}

// decodeText reads data as UTF-8, dropping a leading BOM and replacing
// invalid sequences.
func decodeText(data []byte) string {
	text := strings.ToValidUTF8(string(data), "\uFFFD")
	return strings.TrimPrefix(text, "\uFEFF")
}

func extractPDFText(reader io.ReaderAt) (string, error) {
	pdfReader, err := pdf.NewReader(reader, lenReader(reader))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}
	var textBuilder strings.Builder
	numPages := pdfReader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read pdf page %d: %w", i, err)
		}
		textBuilder.WriteString(text)
	}
	return textBuilder.String(), nil
}

func extractDocxText(reader io.Reader) (string, error) {
	buf := new(bytes.Buffer)
	_, err := io.Copy(buf, reader)
	if err != nil {
		return "", err
	}
	r := bytes.NewReader(buf.Bytes())

	doc, err := docx.ReadDocxFromMemory(r, int64(buf.Len()))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return doc.Editable().GetContent(), nil
}

// Utility: get reader length for PDF
func lenReader(r io.ReaderAt) int64 {
	switch v := r.(type) {
	case *bytes.Reader:
		return int64(v.Len())
	default:
		return 0
	}
}

// DetectMime guesses the media type of a local file, by extension first and
// by content second.
func DetectMime(path string, data []byte) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".txt":
		return mimeText
	case ".docx":
		return mimeDocx
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return normalizeMime(t)
	}
	return normalizeMime(http.DetectContentType(data))
}

// normalizeMime strips parameters such as "; charset=utf-8".
func normalizeMime(mimeType string) string {
	mediaType, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(mimeType))
	}
	return mediaType
}

func publishSessionUpdate(rabbitConn *amqp.Connection, sessionID string, update map[string]any) error {
	ch, err := rabbitConn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	body, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("failed to marshal session update: %w", err)
	}
	routingKey := fmt.Sprintf("session.%s", sessionID)

	return ch.Publish(
		"session_updates", // exchange
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}
