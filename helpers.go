package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"github.com/streadway/amqp"
)

const (
	mimePlain = "text/plain"
	mimeTeX   = "application/x-tex"
	mimeXTeX  = "text/x-tex"
	mimePDF   = "application/pdf"
	mimeDocx  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var fenceLanguages = []string{"```latex", "```tex", "```"}

// CleanLatex strips a markdown code fence the model sometimes wraps its
// answer in. Lines inside the fence are left untouched so the diff against
// the original stays line accurate.
func CleanLatex(input string) string {
	clean := strings.TrimSpace(input)

	for _, fence := range fenceLanguages {
		if strings.HasPrefix(clean, fence) {
			clean = strings.TrimPrefix(clean, fence)
			break
		}
	}
	clean = strings.TrimLeft(clean, " \t")
	clean = strings.TrimPrefix(clean, "\r")
	clean = strings.TrimPrefix(clean, "\n")

	clean = strings.TrimRight(clean, " \t\r\n")
	clean = strings.TrimSuffix(clean, "```")

	return strings.TrimRight(clean, " \t\r\n")
}

// matchTrailingNewline gives tailored the same run of trailing line breaks as
// original. The model's answer loses it in CleanLatex, and Split would
// otherwise report the original's final empty line as removed.
func matchTrailingNewline(original, tailored string) string {
	tail := original[len(strings.TrimRight(original, "\r\n")):]
	return strings.TrimRight(tailored, "\r\n") + tail
}

// --- R2 storage ---

func newR2Client(cfg aws.Config, r2 *R2Config) *s3.Client {
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", r2.AccountID))
	})
}

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

func UploadToR2(ctx context.Context, client *s3.Client, bucket, key string, body []byte, contentType string) error {
	_, err := client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to put object: %w", err)
	}
	return nil
}

// tailoredObjectKey is where the rewritten resume is exported as a .tex file.
func tailoredObjectKey(sessionID, resumeID uuid.UUID) string {
	return fmt.Sprintf("tailored/%s/%s.tex", sessionID, resumeID)
}

// --- Text extraction ---

func ExtractResumeText(mime string, data []byte) (string, error) {
	switch mime {
	case mimePlain, mimeTeX, mimeXTeX:
		return string(data), nil

	case mimePDF:
		return extractPDFText(data)

	case mimeDocx:
		return extractDocxText(data)

	default:
		return "", fmt.Errorf("unsupported file type: %s", mime)
	}
}

func extractPDFText(data []byte) (string, error) {
	pdfReader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
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

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return doc.Editable().GetContent(), nil
}

// --- Status updates ---

func publishSessionUpdate(rabbitConn *amqp.Connection, update SessionUpdate) error {
	ch, err := rabbitConn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	body, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("failed to marshal session update: %w", err)
	}
	routingKey := fmt.Sprintf("session.%s", update.SessionID)

	return ch.Publish(
		sessionUpdatesExchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}
