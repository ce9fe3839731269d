package archive

import (
	"context"
	"errors"
	"github.com/rs/zerolog"
	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"mediscreen.com/prescreen/screening"
	"mediscreen.com/prescreen/session"
	"mediscreen.com/prescreen/types"
	"reflect"
	"testing"
	"time"
)

type mockedBackendsConfig struct {
	storeMockConfig
	objectsMockConfig
	notifierMockConfig
}

type mockedBackends struct {
	store    *storeMock
	objects  *objectsMock
	notifier *notifierMock
}

type methodsCalls struct {
	store    storeMockCalls
	objects  objectsMockCalls
	notifier notifierMockCalls
}

var startedAt = time.Date(2024, 10, 1, 9, 30, 0, 0, time.UTC)

func configureArchiver(config mockedBackendsConfig) (*Archiver, *mockedBackends) {
	store := &storeMock{config: config.storeMockConfig}
	objects := &objectsMock{config: config.objectsMockConfig}
	notifier := &notifierMock{
		config:     config.notifierMockConfig,
		closeErrs:  make(chan *amqp.Error, 1),
		reconnects: make(chan error),
	}
	return &Archiver{
			store:      store,
			objects:    objects,
			notifier:   notifier,
			logger:     zerolog.Nop(),
			callLogger: zerolog.Nop(),
			now:        func() time.Time { return startedAt.Add(3 * time.Minute) },
			newID:      func() string { return "rec-1" },
		}, &mockedBackends{
			store:    store,
			objects:  objects,
			notifier: notifier,
		}
}

func screenedSession(t *testing.T, from string, answers ...string) *session.Session {
	t.Helper()
	registry := session.NewRegistry(session.Config{TTL: time.Minute, CleanupInterval: time.Hour}, func() *screening.Conversation {
		return screening.NewConversation(screening.WithLogger(zerolog.Nop()))
	})
	sess := registry.Create("CA100", from)
	sess.StartedAt = startedAt
	sess.Start()
	sess.Submit("yes")
	for _, a := range answers {
		sess.Submit(a)
	}
	return sess
}

var eligibleAnswers = []string{
	"I am 35", "no", "no", "no", "no",
	"five five five", "one two three", "four five six seven", "October sixteenth",
}

var ineligibleAnswers = []string{
	"I am 80", "no", "no", "no", "no",
	"five five five", "one two three", "four five six seven", "October sixteenth",
}

func testConfiguration(t *testing.T, config mockedBackendsConfig, sess *session.Session, expectedCalls methodsCalls, wantErr bool) *mockedBackends {
	t.Helper()
	archiver, mocks := configureArchiver(config)
	_, err := archiver.Archive(context.Background(), sess)
	if wantErr {
		assert.Error(t, err)
	} else {
		assert.NoError(t, err)
	}
	calls := methodsCalls{
		store:    mocks.store.calls,
		objects:  mocks.objects.calls,
		notifier: mocks.notifier.calls,
	}
	if !reflect.DeepEqual(calls, expectedCalls) {
		t.Errorf("Got unexpected called methods set.\nExpected:\n%+v\nGot:\n%+v", expectedCalls, calls)
	}
	return mocks
}

func TestArchiver(t *testing.T) {
	t.Run("Eligible caller", testEligibleCaller)
	t.Run("Ineligible caller", testIneligibleCaller)
	t.Run("Eligible caller without number", testNoFromNumber)
	t.Run("Store failure", testStoreFailure)
	t.Run("Upload failure", testUploadFailure)
	t.Run("Publish failure", testPublishFailure)
}

func testEligibleCaller(t *testing.T) {
	sess := screenedSession(t, "+15550001111", eligibleAnswers...)
	mocks := testConfiguration(t, mockedBackendsConfig{}, sess, methodsCalls{
		store:    storeMockCalls{saveCallRecord: true},
		objects:  objectsMockCalls{uploadCallRecord: true},
		notifier: notifierMockCalls{publishFollowUp: true},
	}, false)

	require.Len(t, mocks.store.saved, 1)
	record := mocks.store.saved[0]
	assert.Equal(t, "rec-1", record.RecordID)
	assert.Equal(t, "CA100", record.CallSid)
	assert.Equal(t, 180.0, record.DurationSeconds)
	assert.True(t, record.Summary.Eligible)

	require.Len(t, mocks.notifier.published, 1)
	assert.Equal(t, types.FollowUp{
		CallSid:          "CA100",
		ToNumber:         "+15550001111",
		ContactInfo:      "555-123-4567",
		AvailabilityDate: "10/16",
		TrialName:        types.DefaultTrialName,
		Message:          followUpMessage,
	}, mocks.notifier.published[0])
}

func testIneligibleCaller(t *testing.T) {
	sess := screenedSession(t, "+15550001111", ineligibleAnswers...)
	testConfiguration(t, mockedBackendsConfig{}, sess, methodsCalls{
		store:   storeMockCalls{saveCallRecord: true},
		objects: objectsMockCalls{uploadCallRecord: true},
	}, false)
}

func testNoFromNumber(t *testing.T) {
	sess := screenedSession(t, "", eligibleAnswers...)
	testConfiguration(t, mockedBackendsConfig{}, sess, methodsCalls{
		store:   storeMockCalls{saveCallRecord: true},
		objects: objectsMockCalls{uploadCallRecord: true},
	}, false)
}

func testStoreFailure(t *testing.T) {
	sess := screenedSession(t, "+15550001111", eligibleAnswers...)
	testConfiguration(t, mockedBackendsConfig{
		storeMockConfig: storeMockConfig{saveCallRecord: failingMethod{true}},
	}, sess, methodsCalls{
		store: storeMockCalls{saveCallRecord: true},
	}, true)
}

func testUploadFailure(t *testing.T) {
	sess := screenedSession(t, "+15550001111", eligibleAnswers...)
	testConfiguration(t, mockedBackendsConfig{
		objectsMockConfig: objectsMockConfig{uploadCallRecord: failingMethod{true}},
	}, sess, methodsCalls{
		store:   storeMockCalls{saveCallRecord: true},
		objects: objectsMockCalls{uploadCallRecord: true},
	}, true)
}

func testPublishFailure(t *testing.T) {
	sess := screenedSession(t, "+15550001111", eligibleAnswers...)
	mocks := testConfiguration(t, mockedBackendsConfig{
		notifierMockConfig: notifierMockConfig{publishFollowUp: failingMethod{true}},
	}, sess, methodsCalls{
		store:    storeMockCalls{saveCallRecord: true},
		objects:  objectsMockCalls{uploadCallRecord: true},
		notifier: notifierMockCalls{publishFollowUp: true},
	}, true)
	assert.Len(t, mocks.store.saved, 1)
}

func TestArchiverWithoutBackends(t *testing.T) {
	archiver := newArchiver()
	sess := screenedSession(t, "+15550001111", eligibleAnswers...)
	record, err := archiver.Archive(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, "CA100", record.CallSid)
	assert.NotEmpty(t, record.RecordID)

	_, err = archiver.Lookup(context.Background(), "CA100")
	assert.ErrorIs(t, err, ErrRecordNotFound)
	archiver.Close()
}

func TestArchiverLookup(t *testing.T) {
	archiver, mocks := configureArchiver(mockedBackendsConfig{})
	sess := screenedSession(t, "", eligibleAnswers[:3]...)
	_, err := archiver.Archive(context.Background(), sess)
	require.NoError(t, err)

	record, err := archiver.Lookup(context.Background(), "CA100")
	require.NoError(t, err)
	assert.Equal(t, 3, record.Summary.QuestionsAsked)

	_, err = archiver.Lookup(context.Background(), "CA-other")
	assert.ErrorIs(t, err, ErrRecordNotFound)

	archiver.Close()
	assert.True(t, mocks.store.calls.close)
	assert.True(t, mocks.objects.calls.close)
	assert.True(t, mocks.notifier.calls.close)
}

func TestArchiverLookupFallsBackToObjects(t *testing.T) {
	ctx := context.Background()
	archiver, mocks := configureArchiver(mockedBackendsConfig{})
	_, err := archiver.Archive(ctx, screenedSession(t, "", eligibleAnswers[:3]...))
	require.NoError(t, err)

	// The call store expired the record.
	mocks.store.saved = nil
	record, err := archiver.Lookup(ctx, "CA100")
	require.NoError(t, err)
	assert.Equal(t, "CA100", record.CallSid)
	assert.True(t, mocks.store.calls.getCallRecord)
	assert.True(t, mocks.objects.calls.downloadCallRecord)

	archiver, mocks = configureArchiver(mockedBackendsConfig{
		storeMockConfig: storeMockConfig{getCallRecord: failingMethod{true}},
	})
	_, err = archiver.Lookup(ctx, "CA100")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrRecordNotFound)
	assert.False(t, mocks.objects.calls.downloadCallRecord)

	archiver, _ = configureArchiver(mockedBackendsConfig{
		objectsMockConfig: objectsMockConfig{downloadCallRecord: failingMethod{true}},
	})
	_, err = archiver.Lookup(ctx, "CA-other")
	assert.Error(t, err)
}

func TestArchiverBackends(t *testing.T) {
	ctx := context.Background()
	archiver, _ := configureArchiver(mockedBackendsConfig{})
	assert.Equal(t, map[string]bool{"redis": true, "s3": true, "rmq": true}, archiver.Backends(ctx))

	archiver, _ = configureArchiver(mockedBackendsConfig{
		storeMockConfig: storeMockConfig{ping: failingMethod{true}},
	})
	assert.False(t, archiver.Backends(ctx)["redis"])

	assert.Equal(t, map[string]bool{"redis": false, "s3": false, "rmq": false}, newArchiver().Backends(ctx))
}

func TestNotifierReconnect(t *testing.T) {
	ctx := context.Background()
	archiver, mocks := configureArchiver(mockedBackendsConfig{})
	archiver.watchNotifier(time.Millisecond)

	mocks.notifier.closeErrs <- &amqp.Error{Code: amqp.ConnectionForced, Reason: "broker shutdown"}
	// The first attempt fails, the watcher keeps retrying.
	mocks.notifier.reconnects <- errors.New("connection refused")
	assert.False(t, archiver.Backends(ctx)["rmq"])

	sess := screenedSession(t, "+15550001111", eligibleAnswers...)
	_, err := archiver.Archive(ctx, sess)
	assert.ErrorIs(t, err, ErrNotifierDown)
	assert.False(t, mocks.notifier.calls.publishFollowUp)
	assert.Len(t, mocks.store.saved, 1)

	mocks.notifier.reconnects <- nil
	assert.Eventually(t, func() bool { return archiver.Backends(ctx)["rmq"] }, time.Second, time.Millisecond)

	archiver.Close()
	assert.True(t, mocks.notifier.calls.close)
}
