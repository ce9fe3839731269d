package archive

import (
	"context"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"mediscreen.com/prescreen/logger"
	"mediscreen.com/prescreen/redis"
	"mediscreen.com/prescreen/rmq"
	"mediscreen.com/prescreen/s3client"
	"mediscreen.com/prescreen/session"
	"mediscreen.com/prescreen/types"
	"sync/atomic"
	"time"
)

var (
	ErrRecordNotFound = errors.New("call record not found")
	ErrNotifierDown   = errors.New("follow-up queue is unavailable")
)

const notifierRetryDelay = 5 * time.Second

const followUpMessage = "Thank you for your interest in our clinical trial! " +
	"You may be eligible for our study. " +
	"Please check your email for next steps and scheduling information. " +
	"If you have any questions, please call us back."

type Config struct {
	RedisEnabled bool
	S3Enabled    bool
	RMQEnabled   bool
}

// Archiver persists finished calls and asks for a follow-up when the
// caller looks eligible. Disabled backends are skipped.
type Archiver struct {
	store    recordStore
	objects  objectStore
	notifier notifier

	notifierDown atomic.Bool
	watch        *notifierWatch

	logger     zerolog.Logger
	callLogger zerolog.Logger
	now        func() time.Time
	newID      func() string
}

func New(cfg Config) (*Archiver, error) {
	archiver := newArchiver()
	if cfg.RedisEnabled {
		client, err := redis.NewClient(0)
		if err != nil {
			archiver.logger.Error().Err(err).Msg("Could not create Redis client")
			return nil, err
		}
		archiver.store = &redisStoreWrapper{client}
	}
	if cfg.S3Enabled {
		client, err := s3client.New()
		if err != nil {
			archiver.logger.Error().Err(err).Msg("Could not create S3 client")
			archiver.Close()
			return nil, err
		}
		archiver.objects = &s3StoreWrapper{client}
	}
	if cfg.RMQEnabled {
		client, err := rmq.NewClient()
		if err != nil {
			archiver.logger.Error().Err(err).Msg("Could not create RMQ client")
			archiver.Close()
			return nil, err
		}
		archiver.notifier = &rmqNotifierWrapper{client}
		archiver.watchNotifier(notifierRetryDelay)
	}
	archiver.logger.Info().
		Bool("redis", cfg.RedisEnabled).
		Bool("s3", cfg.S3Enabled).
		Bool("rmq", cfg.RMQEnabled).
		Msg("Archiver ready")
	return archiver, nil
}

func newArchiver() *Archiver {
	return &Archiver{
		logger:     logger.NewLogger("Archiver"),
		callLogger: logger.NewLogger("Call Archive"),
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

func (archiver *Archiver) Archive(ctx context.Context, sess *session.Session) (types.CallRecord, error) {
	now := archiver.now().UTC()
	record := types.CallRecord{
		RecordID:        archiver.newID(),
		CallSid:         sess.CallSid,
		FromNumber:      sess.From,
		StartTime:       sess.StartedAt.UTC(),
		DurationSeconds: sess.Duration(now).Seconds(),
		Summary:         sess.Summary(),
		Timestamp:       now,
	}
	recordLogger := archiver.logger.With().
		Str("call_sid", record.CallSid).
		Str("record_id", record.RecordID).
		Logger()

	archiver.callLogger.Info().Interface("record", record).Msg("Call archived")

	if archiver.store != nil {
		if err := archiver.store.saveCallRecord(ctx, record); err != nil {
			recordLogger.Error().Err(err).Msg("Failed to store call record")
			return record, fmt.Errorf("store call record: %w", err)
		}
	}
	if archiver.objects != nil {
		key, err := archiver.objects.uploadCallRecord(ctx, record)
		if err != nil {
			recordLogger.Error().Err(err).Msg("Failed to upload call record")
			return record, fmt.Errorf("upload call record: %w", err)
		}
		recordLogger.Debug().Str("key", key).Msg("Uploaded call record")
	}

	if !record.Summary.Eligible || record.FromNumber == "" || archiver.notifier == nil {
		return record, nil
	}
	if archiver.notifierDown.Load() {
		recordLogger.Warn().Msg("Follow-up queue is down, skipping follow-up")
		return record, fmt.Errorf("publish follow-up: %w", ErrNotifierDown)
	}
	if err := archiver.notifier.publishFollowUp(NewFollowUp(record)); err != nil {
		recordLogger.Error().Err(err).Msg("Failed to publish follow-up")
		return record, fmt.Errorf("publish follow-up: %w", err)
	}
	recordLogger.Info().Msg("Follow-up requested")
	return record, nil
}

func NewFollowUp(record types.CallRecord) types.FollowUp {
	followUp := types.FollowUp{
		CallSid:   record.CallSid,
		ToNumber:  record.FromNumber,
		TrialName: record.Summary.TrialName,
		Message:   followUpMessage,
	}
	if info := record.Summary.PatientInfo.ContactInfo; info != nil {
		followUp.ContactInfo = *info
	}
	if date := record.Summary.PatientInfo.AvailabilityDate; date != nil {
		followUp.AvailabilityDate = *date
	}
	return followUp
}

// Lookup returns a stored call record. Records the call store no longer
// holds are read back from the object store.
func (archiver *Archiver) Lookup(ctx context.Context, callSid string) (types.CallRecord, error) {
	if archiver.store != nil {
		record, err := archiver.store.getCallRecord(ctx, callSid)
		if !errors.Is(err, ErrRecordNotFound) {
			return record, err
		}
	}
	if archiver.objects == nil {
		return types.CallRecord{}, ErrRecordNotFound
	}
	return archiver.objects.downloadCallRecord(ctx, callSid)
}

// Backends reports which backends are wired and currently usable. Redis
// is pinged on every call.
func (archiver *Archiver) Backends(ctx context.Context) map[string]bool {
	return map[string]bool{
		"redis": archiver.store != nil && archiver.store.ping(ctx) == nil,
		"s3":    archiver.objects != nil,
		"rmq":   archiver.notifier != nil && !archiver.notifierDown.Load(),
	}
}

func (archiver *Archiver) Close() {
	archiver.stopWatch()
	if archiver.store != nil {
		archiver.store.close()
	}
	if archiver.objects != nil {
		archiver.objects.close()
	}
	if archiver.notifier != nil {
		archiver.notifier.close()
	}
}
