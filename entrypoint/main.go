package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"github.com/kelseyhightower/envconfig"
	"io"
	"mediscreen.com/prescreen/api"
	"mediscreen.com/prescreen/archive"
	"mediscreen.com/prescreen/logger"
	"mediscreen.com/prescreen/screening"
	"mediscreen.com/prescreen/session"
	"mediscreen.com/prescreen/types"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

type Config struct {
	Port            string        `envconfig:"PRESCREEN_PORT" default:"5000"`
	TrialConfigPath string        `envconfig:"PRESCREEN_TRIAL_CONFIG" default:""`
	SessionTTL      time.Duration `envconfig:"PRESCREEN_SESSION_TTL" default:"30m"`
	RedisEnabled    bool          `envconfig:"PRESCREEN_REDIS_ENABLED" default:"false"`
	S3Enabled       bool          `envconfig:"PRESCREEN_S3_ENABLED" default:"false"`
	RMQEnabled      bool          `envconfig:"PRESCREEN_RMQ_ENABLED" default:"false"`
	NewCallsPerSec  float64       `envconfig:"PRESCREEN_NEW_CALLS_PER_SECOND" default:"0"`
	NewCallsBurst   int           `envconfig:"PRESCREEN_NEW_CALLS_BURST" default:"10"`
}

const shutdownTimeout = 10 * time.Second

func main() {
	logger.SetupLogging()
	mainLogger := logger.NewLogger("Main")
	console := flag.Bool("console", false, "run one screening on stdin/stdout")
	flag.Parse()

	var config Config
	if err := envconfig.Process("", &config); err != nil {
		mainLogger.Fatal().Caller().Err(err).Msg("Failed to read environment")
	}

	trial, questions, err := loadTrial(config.TrialConfigPath)
	if err != nil {
		mainLogger.Fatal().Err(err).Msg("Failed to load trial configuration")
	}
	mainLogger.Info().Str("trial", trial.Name).Int("questions", questions.Len()).Msg("Loaded trial")

	newConversation := func() *screening.Conversation {
		return screening.NewConversation(screening.WithTrial(trial), screening.WithQuestionSet(questions))
	}

	if *console {
		if err := runConsole(newConversation(), os.Stdin, os.Stdout); err != nil {
			mainLogger.Fatal().Err(err).Msg("Console screening failed")
		}
		return
	}

	archiver, err := archive.New(archive.Config{
		RedisEnabled: config.RedisEnabled,
		S3Enabled:    config.S3Enabled,
		RMQEnabled:   config.RMQEnabled,
	})
	if err != nil {
		mainLogger.Fatal().Err(err).Msg("Could not initialize archiver")
	}
	defer archiver.Close()

	sessions := session.NewRegistry(session.Config{
		TTL:             config.SessionTTL,
		CleanupInterval: config.SessionTTL / 6,
	}, newConversation)
	handler := api.NewHandler(sessions, archiver, api.NewMetrics(sessions.Count))
	handler.LimitNewCalls(config.NewCallsPerSec, config.NewCallsBurst)
	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", config.Port),
		Handler:           api.NewRouter(handler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		mainLogger.Info().Msgf("Webhook API on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			mainLogger.Error().Err(err).Msg("Webhook API stopped with error")
			stop()
		}
	}()

	<-ctx.Done()
	mainLogger.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		mainLogger.Error().Err(err).Msg("Graceful shutdown failed")
	}
	handler.Wait()
}

func loadTrial(path string) (types.TrialConfiguration, screening.QuestionSet, error) {
	trial := types.DefaultTrialConfiguration()
	if path != "" {
		var err error
		if trial, err = types.LoadTrialConfiguration(path); err != nil {
			return trial, screening.QuestionSet{}, err
		}
	}
	questions, err := screening.QuestionSetFromTrial(trial)
	return trial, questions, err
}

// runConsole plays one screening over plain text, one answer per line.
func runConsole(conversation *screening.Conversation, in io.Reader, out io.Writer) error {
	fmt.Fprintf(out, "AGENT: %s\n", conversation.Start())
	scanner := bufio.NewScanner(in)
	for !conversation.Concluded() {
		fmt.Fprint(out, "YOU: ")
		if !scanner.Scan() {
			break
		}
		fmt.Fprintf(out, "AGENT: %s\n", conversation.Submit(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	summary := conversation.Summary()
	fmt.Fprintf(out, "\nEligible: %t\nQuestions asked: %d\n", summary.Eligible, summary.QuestionsAsked)
	return nil
}
