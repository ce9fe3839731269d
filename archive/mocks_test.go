package archive

import (
	"context"
	"errors"
	"github.com/streadway/amqp"
	"mediscreen.com/prescreen/types"
)

type failingMethod struct {
	fail bool
}

type storeMock struct {
	config storeMockConfig
	calls  storeMockCalls
	saved  []types.CallRecord
}

type storeMockConfig struct {
	saveCallRecord failingMethod
	getCallRecord  failingMethod
	ping           failingMethod
}

type storeMockCalls struct {
	saveCallRecord bool
	getCallRecord  bool
	close          bool
}

type objectsMock struct {
	config   objectsMockConfig
	calls    objectsMockCalls
	uploaded []types.CallRecord
}

type objectsMockConfig struct {
	uploadCallRecord   failingMethod
	downloadCallRecord failingMethod
}

type objectsMockCalls struct {
	uploadCallRecord   bool
	downloadCallRecord bool
	close              bool
}

type notifierMock struct {
	config    notifierMockConfig
	calls     notifierMockCalls
	published []types.FollowUp

	// closeErrs feeds the watcher, reconnects answers each reconnect call.
	closeErrs  chan *amqp.Error
	reconnects chan error
}

type notifierMockConfig struct {
	publishFollowUp failingMethod
}

type notifierMockCalls struct {
	publishFollowUp bool
	close           bool
}

func (mock *storeMock) saveCallRecord(_ context.Context, record types.CallRecord) error {
	mock.calls.saveCallRecord = true
	if mock.config.saveCallRecord.fail {
		return errors.New("failed to save call record")
	}
	mock.saved = append(mock.saved, record)
	return nil
}

func (mock *storeMock) getCallRecord(_ context.Context, callSid string) (types.CallRecord, error) {
	mock.calls.getCallRecord = true
	if mock.config.getCallRecord.fail {
		return types.CallRecord{}, errors.New("failed to get call record")
	}
	for _, record := range mock.saved {
		if record.CallSid == callSid {
			return record, nil
		}
	}
	return types.CallRecord{}, ErrRecordNotFound
}

func (mock *storeMock) ping(_ context.Context) error {
	if mock.config.ping.fail {
		return errors.New("failed to ping")
	}
	return nil
}

func (mock *storeMock) close() {
	mock.calls.close = true
}

func (mock *objectsMock) uploadCallRecord(_ context.Context, record types.CallRecord) (string, error) {
	mock.calls.uploadCallRecord = true
	if mock.config.uploadCallRecord.fail {
		return "", errors.New("failed to upload call record")
	}
	mock.uploaded = append(mock.uploaded, record)
	return "conversations/00/" + record.CallSid + ".json", nil
}

func (mock *objectsMock) downloadCallRecord(_ context.Context, callSid string) (types.CallRecord, error) {
	mock.calls.downloadCallRecord = true
	if mock.config.downloadCallRecord.fail {
		return types.CallRecord{}, errors.New("failed to download call record")
	}
	for _, record := range mock.uploaded {
		if record.CallSid == callSid {
			return record, nil
		}
	}
	return types.CallRecord{}, ErrRecordNotFound
}

func (mock *objectsMock) close() {
	mock.calls.close = true
}

func (mock *notifierMock) publishFollowUp(followUp types.FollowUp) error {
	mock.calls.publishFollowUp = true
	if mock.config.publishFollowUp.fail {
		return errors.New("failed to publish follow-up")
	}
	mock.published = append(mock.published, followUp)
	return nil
}

func (mock *notifierMock) closeErrors() <-chan *amqp.Error {
	return mock.closeErrs
}

func (mock *notifierMock) reconnect() error {
	return <-mock.reconnects
}

func (mock *notifierMock) close() {
	mock.calls.close = true
}
