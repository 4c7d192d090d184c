package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	_ "github.com/lib/pq"
	"github.com/muhammadolammi/resumetailor/internal/database"
	"github.com/muhammadolammi/resumetailor/internal/linediff"
	"github.com/streadway/amqp"
	"google.golang.org/adk/agent"
	"google.golang.org/adk/session"
	"google.golang.org/genai"
)

const (
	sessionsQueue          = "tailor_sessions"
	sessionUpdatesExchange = "session_updates"
)

var retryBackoff = 500 * time.Millisecond

// retry retries a function up to `attempts` times, waiting a little longer
// after each failure.
func retry[T any](attempts int, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for i := 0; i < attempts; i++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err
		if i < attempts-1 {
			time.Sleep(retryBackoff * time.Duration(i+1))
		}
	}
	return zero, fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}

// aggregateResult appends the outcome for one resume. A nil err with a
// non-blank rewrite is diffed against the original text.
func aggregateResult(results *TailorResults, resume database.Resume, original, tailored, objectKey string, err error) {
	result := TailorResult{
		ResumeID:         resume.ID,
		OriginalFilename: resume.OriginalFilename,
	}
	switch {
	case err != nil:
		result.IsErrorResult = true
		result.Error = err.Error()

	case strings.TrimSpace(tailored) == "":
		result.IsErrorResult = true
		result.Error = "empty response from agent"

	default:
		tailored = matchTrailingNewline(original, tailored)
		diff := linediff.Compare(original, tailored)
		result.TailoredResume = tailored
		result.TailoredObjectKey = objectKey
		result.Changes = diff.Changes
		result.Stats = diff.Stats
		result.Summary = linediff.Summary(diff.Stats)
	}

	results.Results = append(results.Results, result)
}

// runAgent sends one resume through the tailoring agent and returns the text
// of its final response.
func runAgent(ctx context.Context, workerConfig *WorkerConfig, userID, sessionID, msg string) (string, error) {
	stream := workerConfig.AgentRunner.Run(ctx, userID, sessionID, &genai.Content{
		Role: "user",
		Parts: []*genai.Part{
			{Text: msg},
		},
	}, agent.RunConfig{})

	var output string
	for event, err := range stream {
		if err != nil {
			return "", err
		}
		if event == nil || !event.IsFinalResponse() || event.Content == nil {
			continue
		}
		var sb strings.Builder
		for _, part := range event.Content.Parts {
			if part != nil {
				sb.WriteString(part.Text)
			}
		}
		output = sb.String()
	}

	if output == "" {
		return "", errors.New("empty agent response")
	}
	return output, nil
}

// agentAttempt runs fn in a new agent session that is deleted afterwards, so a
// retried attempt never sees the turns of an earlier one.
func agentAttempt(ctx context.Context, svc session.Service, appName, userID, sessionID string, fn func(userID, sessionID string) (string, error)) (string, error) {
	agentSession, err := svc.Create(ctx, &session.CreateRequest{
		AppName:   appName,
		UserID:    userID,
		SessionID: sessionID,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create agent session: %w", err)
	}
	defer func() {
		err := svc.Delete(ctx, &session.DeleteRequest{
			AppName:   agentSession.Session.AppName(),
			UserID:    agentSession.Session.UserID(),
			SessionID: agentSession.Session.ID(),
		})
		if err != nil {
			log.Printf("⚠️ Failed to delete agent session %s: %v", agentSession.Session.ID(), err)
		}
	}()

	return fn(agentSession.Session.UserID(), agentSession.Session.ID())
}

// tailorResume rewrites one resume. Every attempt gets its own agent session
// so neither earlier resumes in the batch nor failed attempts leak into the
// conversation.
func tailorResume(ctx context.Context, currentSession Session, resume database.Resume, resumeText string, workerConfig *WorkerConfig) (string, error) {
	msg := buildTailorMessage(currentSession, resumeText)
	attempt := 0
	output, err := retry(2, func() (string, error) {
		attempt++
		return agentAttempt(ctx, workerConfig.AgentSessionService, workerConfig.AgentName,
			currentSession.UserID.String(),
			fmt.Sprintf("%s-%s-%d", currentSession.ID, resume.ID, attempt),
			func(userID, sessionID string) (string, error) {
				return runAgent(ctx, workerConfig, userID, sessionID, msg)
			})
	})
	if err != nil {
		return "", fmt.Errorf("agent stream error: %w", err)
	}
	return matchTrailingNewline(resumeText, CleanLatex(output)), nil
}

// tailorSession runs every resume in a session through download, extraction,
// tailoring, diffing and export, then stores the aggregated results. A failing
// resume is recorded as an error result and does not stop the others.
func tailorSession(currentSession Session, workerConfig *WorkerConfig) error {
	ctx := context.Background()
	if strings.TrimSpace(currentSession.JobDescription) == "" {
		return errors.New("missing job description")
	}

	resumes, err := workerConfig.DB.GetResumesBySession(ctx, currentSession.ID)
	if err != nil {
		return fmt.Errorf("error getting resumes for session: %v, err: %w", currentSession.ID, err)
	}
	if len(resumes) == 0 {
		return errors.New("no uploaded resumes in session")
	}

	results := &TailorResults{
		SessionID: currentSession.ID,
	}

	for _, resume := range resumes {
		fileBytes, err := retry(3, func() ([]byte, error) {
			return DownloadFromR2(ctx, workerConfig.S3Client, workerConfig.R2.Bucket, resume.ObjectKey)
		})
		if err != nil {
			log.Printf("⚠️ Failed to download %s after retries: %v", resume.ObjectKey, err)
			aggregateResult(results, resume, "", "", "", fmt.Errorf("file download error: %w", err))
			continue
		}

		resumeText, err := ExtractResumeText(resume.Mime, fileBytes)
		if err != nil {
			log.Printf("⚠️ Text extraction failed for %s: %v", resume.ObjectKey, err)
			aggregateResult(results, resume, "", "", "", fmt.Errorf("text extraction error: %w", err))
			continue
		}
		if strings.TrimSpace(resumeText) == "" {
			aggregateResult(results, resume, "", "", "", errors.New("empty resume text"))
			continue
		}

		tailored, err := tailorResume(ctx, currentSession, resume, resumeText, workerConfig)
		if err != nil {
			log.Printf("⚠️ Agent failed for %s after retries: %v", resume.ObjectKey, err)
			aggregateResult(results, resume, resumeText, "", "", err)
			continue
		}

		objectKey := tailoredObjectKey(currentSession.ID, resume.ID)
		_, err = retry(3, func() (any, error) {
			return nil, UploadToR2(ctx, workerConfig.S3Client, workerConfig.R2.Bucket, objectKey, []byte(tailored), mimeTeX)
		})
		if err != nil {
			// the rewrite is still stored with the results, only the export is missing
			log.Printf("⚠️ Failed to export %s after retries: %v", objectKey, err)
			objectKey = ""
		}

		aggregateResult(results, resume, resumeText, tailored, objectKey, nil)
	}
	log.Printf("session id: %s tailored (%d resumes)", currentSession.ID, len(results.Results))

	resultsJSON, err := json.Marshal(results.Results)
	if err != nil {
		return fmt.Errorf("failed to marshal tailored results: %w", err)
	}

	_, err = retry(3, func() (any, error) {
		return nil, workerConfig.DB.CreateOrUpdateTailoredResults(ctx, database.CreateOrUpdateTailoredResultsParams{
			Results:   resultsJSON,
			SessionID: results.SessionID,
		})
	})
	if err != nil {
		return fmt.Errorf("failed to save tailored results after retries: %w", err)
	}

	return nil
}

// setStatus records the status in the db and announces it on the updates
// exchange. Both are best effort.
func (workerConfig *WorkerConfig) setStatus(session Session, status, message string) {
	err := workerConfig.DB.UpdateSessionStatus(context.Background(), database.UpdateSessionStatusParams{
		Status:        status,
		StatusMessage: message,
		ID:            session.ID,
	})
	if err != nil {
		log.Printf("⚠️ Failed to update status of session %s to %s: %v", session.ID, status, err)
	}

	err = publishSessionUpdate(workerConfig.RabbitConn, SessionUpdate{
		SessionID: session.ID,
		Status:    status,
		Message:   message,
		Timestamp: time.Now(),
	})
	if err != nil {
		log.Println("failed to publish update:", err)
	}
}

func worker(id int, workerConfig *WorkerConfig, wg *sync.WaitGroup) {
	defer wg.Done()
	conn, err := amqp.Dial(workerConfig.RABBITMQUrl)
	if err != nil {
		log.Fatal("error dialling rabbitmq: " + err.Error())
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatal("error connecting to rabbitmq channel: " + err.Error())
	}
	defer ch.Close()

	err = ch.ExchangeDeclare(
		sessionUpdatesExchange, // exchange name
		"topic",                // kind
		true,                   // durable
		false,                  // auto-delete
		false,                  // internal
		false,                  // no-wait
		nil,                    // arguments
	)
	if err != nil {
		log.Fatalf("Failed to declare exchange: %v", err)
	}

	_, err = ch.QueueDeclare(
		sessionsQueue, // queue name
		true,          // durable (survives broker restarts)
		false,         // auto-delete when unused
		false,         // exclusive
		false,         // no-wait
		nil,           // arguments
	)
	if err != nil {
		log.Fatalf("Failed to declare queue: %v", err)
	}

	// one unacked session per worker, tailoring is slow
	if err := ch.Qos(1, 0, false); err != nil {
		log.Fatalf("Failed to set qos: %v", err)
	}

	msgs, err := ch.Consume(
		sessionsQueue, // queue name
		"",            // consumer tag
		false,         // auto-ack
		false,         // exclusive
		false,         // no-local
		false,         // no-wait
		nil,           // arguments
	)
	if err != nil {
		log.Fatal("error consuming rabbitmq message: " + err.Error())
	}

	for msg := range msgs {
		handleMessage(id, msg.Body, workerConfig)
		if err := msg.Ack(false); err != nil {
			log.Printf("⚠️ Worker %d failed to ack message: %v", id+1, err)
		}
	}
}

func handleMessage(id int, body []byte, workerConfig *WorkerConfig) {
	session := Session{}
	if err := json.Unmarshal(body, &session); err != nil {
		log.Printf("error unmarshalling message body. err: %v", err)
		return
	}
	log.Printf("Worker %d processing session. session_id: %s", id+1, session.ID)

	workerConfig.setStatus(session, StatusProcessing, "tailoring started")

	if err := tailorSession(session, workerConfig); err != nil {
		log.Printf("error tailoring session_id: %v. err: %v", session.ID, err)
		workerConfig.setStatus(session, StatusFailed, fmt.Sprintf("tailoring failed: %v", err))
		return
	}

	workerConfig.setStatus(session, StatusCompleted, "tailoring completed")
}

func (workerConfig *WorkerConfig) StartConsumerWorkerPool(numWorkers int) {
	var wg sync.WaitGroup
	wg.Add(numWorkers)

	for i := range numWorkers {
		log.Println("worker id ", i+1, "started")
		go worker(i, workerConfig, &wg)
	}
	wg.Wait() // block until all workers finish
}
