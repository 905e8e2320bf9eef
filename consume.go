package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/muhammadolammi/resumecritic/internal/critique"
	"github.com/muhammadolammi/resumecritic/internal/database"
	"github.com/streadway/amqp"
	"google.golang.org/adk/session"
)

const (
	statusProcessing = "processing"
	statusCompleted  = "completed"
	statusFailed     = "failed"
	statusCritiqued  = "critiqued"
)

var retryBackoff = 500 * time.Millisecond

// retry retries a function up to `attempts` times with linear backoff
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

func aggregateResult(results *CritiqueResults, resume database.Resume, analysis *critique.Result, coaching *Coaching, err error) {
	result := CritiqueResult{
		ResumeID: resume.ID,
		Filename: resume.OriginalFilename,
	}
	switch {
	case err != nil:
		result.IsErrorResult = true
		result.Error = err.Error()

	case analysis == nil:
		result.IsErrorResult = true
		result.Error = "empty analysis result"

	default:
		result.Result = analysis
		result.Coaching = coaching
	}

	results.Results = append(results.Results, result)
}

// averageScore is the mean score of the successful entries, 0 when there are none.
func averageScore(results *CritiqueResults) int {
	var sum, n int
	for _, r := range results.Results {
		if r.IsErrorResult || r.Result == nil {
			continue
		}
		sum += r.Result.Score
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / n
}

// coachFunc returns coaching for one analyzed resume.
type coachFunc func(resumeText string, analysis critique.Result) (*Coaching, error)

// critiqueSession scores every resume in a session and stores the results.
// Download and DB writes are retried; a failing resume becomes an error entry
// instead of failing the whole session.
func critiqueSession(currentSession Session, workerConfig *WorkerConfig) (*CritiqueResults, error) {
	ctx := context.Background()
	resumes, err := workerConfig.DB.GetResumesBySession(ctx, currentSession.ID)
	if err != nil {
		return nil, fmt.Errorf("error getting resumes for session: %v, err: %w", currentSession.ID, err)
	}

	results := &CritiqueResults{
		ID:        uuid.New(),
		SessionID: currentSession.ID,
		CreatedAt: time.Now(),
	}

	var coach coachFunc
	if workerConfig.CoachRunner != nil {
		created, err := workerConfig.CoachSessionService.Create(ctx, &session.CreateRequest{
			AppName:   workerConfig.CoachName,
			UserID:    currentSession.UserID.String(),
			SessionID: currentSession.ID.String(),
		})
		if err != nil {
			log.Printf("⚠️ Coaching disabled for session %s: %v", currentSession.ID, err)
		} else {
			coachSession := created.Session
			coach = func(resumeText string, analysis critique.Result) (*Coaching, error) {
				return coachResume(ctx, workerConfig, coachSession.UserID(), coachSession.ID(), resumeText, analysis)
			}
			defer func() {
				err := workerConfig.CoachSessionService.Delete(ctx, &session.DeleteRequest{
					AppName:   coachSession.AppName(),
					UserID:    coachSession.UserID(),
					SessionID: coachSession.ID(),
				})
				if err != nil {
					log.Printf("failed to delete coach session: %v", err)
				}
			}()
		}
	}

	for _, resume := range resumes {
		critiqueResume(ctx, workerConfig, results, resume, coach)
	}
	log.Printf("session id: %s critiqued (%d resumes)", currentSession.ID, len(results.Results))

	if err := saveResults(ctx, workerConfig, results); err != nil {
		return nil, err
	}
	results.UpdatedAt = time.Now()

	return results, nil
}

// critiqueResume downloads, ingests, analyzes and optionally coaches one
// resume and appends its entry to results. A resume without an uploaded file
// is skipped. A nil coach disables coaching.
func critiqueResume(ctx context.Context, workerConfig *WorkerConfig, results *CritiqueResults, resume database.Resume, coach coachFunc) {
	if resume.ObjectKey == "" {
		log.Printf("resume %s has no uploaded file, skipping", resume.ID)
		return
	}

	fileBytes, err := retry(3, func() ([]byte, error) {
		return workerConfig.Download(ctx, resume.ObjectKey)
	})
	if err != nil {
		log.Printf("⚠️ Failed to download %s after retries: %v", resume.ObjectKey, err)
		aggregateResult(results, resume, nil, nil, fmt.Errorf("file download error: %w", err))
		markResume(ctx, workerConfig, resume.ID, statusFailed)
		return
	}

	resumeText, err := IngestResume(resume.Mime, fileBytes, workerConfig.Ingest)
	if err != nil {
		log.Printf("⚠️ Text extraction failed for %s: %v", resume.ObjectKey, err)
		aggregateResult(results, resume, nil, nil, fmt.Errorf("text extraction error: %w", err))
		markResume(ctx, workerConfig, resume.ID, statusFailed)
		return
	}

	analysis := critique.Analyze(resumeText)

	var coaching *Coaching
	if coach != nil {
		coaching, err = coach(resumeText, analysis)
		if err != nil {
			log.Printf("⚠️ Coaching failed for %s: %v", resume.ObjectKey, err)
			coaching = nil
		}
	}

	aggregateResult(results, resume, &analysis, coaching, nil)
	markResume(ctx, workerConfig, resume.ID, statusCritiqued)
}

// saveResults upserts the session's entries together with their average score.
func saveResults(ctx context.Context, workerConfig *WorkerConfig, results *CritiqueResults) error {
	resultsJSON, err := json.Marshal(results.Results)
	if err != nil {
		return fmt.Errorf("failed to marshal critique results: %w", err)
	}

	_, err = retry(3, func() (any, error) {
		return nil, workerConfig.DB.CreateOrUpdateCritiqueResults(ctx, database.CreateOrUpdateCritiqueResultsParams{
			Results:      resultsJSON,
			AverageScore: int32(averageScore(results)),
			SessionID:    results.SessionID,
		})
	})
	if err != nil {
		return fmt.Errorf("failed to save critique results after retries: %w", err)
	}
	return nil
}

func markResume(ctx context.Context, workerConfig *WorkerConfig, id uuid.UUID, status string) {
	err := workerConfig.DB.MarkResumeCritiqued(ctx, database.MarkResumeCritiquedParams{
		UploadStatus: status,
		ID:           id,
	})
	if err != nil {
		log.Printf("failed to mark resume %s as %s: %v", id, status, err)
	}
}

// setSessionStatus stores the status and publishes it on the session_updates exchange.
func setSessionStatus(workerConfig *WorkerConfig, sessionID uuid.UUID, status, message string, extra map[string]any) {
	err := workerConfig.DB.UpdateSessionStatus(context.Background(), database.UpdateSessionStatusParams{
		Status: status,
		ID:     sessionID,
	})
	if err != nil {
		log.Printf("error updating session status in db to %s for session_id: %v. err: %v", status, sessionID, err)
	}

	if err := publishSessionUpdate(workerConfig.RabbitConn, sessionID.String(), sessionUpdate(sessionID, status, message, extra)); err != nil {
		log.Println("failed to publish update:", err)
	}
}

func sessionUpdate(sessionID uuid.UUID, status, message string, extra map[string]any) map[string]any {
	update := map[string]any{
		"session_id": sessionID,
		"status":     status,
		"message":    message,
		"timestamp":  time.Now(),
	}
	for k, v := range extra {
		update[k] = v
	}
	return update
}

var errBadMessage = errors.New("malformed session message")

func decodeSession(body []byte) (Session, error) {
	session := Session{}
	if err := json.Unmarshal(body, &session); err != nil {
		return session, fmt.Errorf("%w: %v", errBadMessage, err)
	}
	if session.ID == uuid.Nil {
		return session, fmt.Errorf("%w: missing session id", errBadMessage)
	}
	return session, nil
}

func handleMessage(id int, workerConfig *WorkerConfig, body []byte) {
	session, err := decodeSession(body)
	if err != nil {
		log.Printf("error unmarshalling message body. err: %v", err)
		if session.ID != uuid.Nil {
			setSessionStatus(workerConfig, session.ID, statusFailed, "critique failed", nil)
		}
		return
	}
	log.Printf("Worker %d processing session. session_id: %s", id+1, session.ID)

	setSessionStatus(workerConfig, session.ID, statusProcessing, "critique started", nil)

	results, err := critiqueSession(session, workerConfig)
	if err != nil {
		log.Printf("error critiquing session_id: %v. err: %v", session.ID, err)
		setSessionStatus(workerConfig, session.ID, statusFailed, "critique failed", nil)
		return
	}

	// pacing only; results are already stored
	time.Sleep(workerConfig.ProcessingDelay)

	setSessionStatus(workerConfig, session.ID, statusCompleted, "critique completed", map[string]any{
		"average_score": averageScore(results),
		"resume_count":  len(results.Results),
	})
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
	_, err = ch.QueueDeclare(
		"sessions", // queue name
		true,       // durable (survives broker restarts)
		false,      // auto-delete when unused
		false,      // exclusive
		false,      // no-wait
		nil,        // arguments
	)
	if err != nil {
		log.Fatalf("Failed to declare queue: %v", err)
	}

	msgs, err := ch.Consume(
		"sessions", // queue name
		"",         // consumer tag
		true,       // auto-ack
		false,      // exclusive
		false,      // no-local
		false,      // no-wait
		nil,        // arguments
	)
	if err != nil {
		log.Fatal("error consuming rabbitmq message: " + err.Error())
	}

	for msg := range msgs {
		handleMessage(id, workerConfig, msg.Body)
	}
}

func (workerConfig *WorkerConfig) StartConsumerWorkerPool(numWorkers int) {
	var wg sync.WaitGroup
	wg.Add(numWorkers)

	for i := range numWorkers {
		log.Println("worker id ", i+1, "started")
		go worker(i, workerConfig, &wg)
	}
	wg.Wait()
}
