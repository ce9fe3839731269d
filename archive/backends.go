package archive

import (
	"context"
	"errors"
	"github.com/streadway/amqp"
	"mediscreen.com/prescreen/redis"
	"mediscreen.com/prescreen/rmq"
	"mediscreen.com/prescreen/s3client"
	"mediscreen.com/prescreen/types"
)

type recordStore interface {
	saveCallRecord(ctx context.Context, record types.CallRecord) error
	getCallRecord(ctx context.Context, callSid string) (types.CallRecord, error)
	ping(ctx context.Context) error
	close()
}

type redisStoreWrapper struct {
	client *redis.Client
}

func (wrapper *redisStoreWrapper) saveCallRecord(ctx context.Context, record types.CallRecord) error {
	return wrapper.client.SaveCallRecord(ctx, record)
}

func (wrapper *redisStoreWrapper) getCallRecord(ctx context.Context, callSid string) (types.CallRecord, error) {
	record, err := wrapper.client.GetCallRecord(ctx, callSid)
	if errors.Is(err, redis.ErrNotFound) {
		return record, ErrRecordNotFound
	}
	return record, err
}

func (wrapper *redisStoreWrapper) ping(ctx context.Context) error {
	return wrapper.client.Ping(ctx)
}

func (wrapper *redisStoreWrapper) close() {
	_ = wrapper.client.Close()
}

type objectStore interface {
	uploadCallRecord(ctx context.Context, record types.CallRecord) (string, error)
	downloadCallRecord(ctx context.Context, callSid string) (types.CallRecord, error)
	close()
}

type s3StoreWrapper struct {
	client *s3client.Client
}

func (wrapper *s3StoreWrapper) uploadCallRecord(ctx context.Context, record types.CallRecord) (string, error) {
	return wrapper.client.UploadCallRecord(ctx, record)
}

func (wrapper *s3StoreWrapper) downloadCallRecord(ctx context.Context, callSid string) (types.CallRecord, error) {
	record, err := wrapper.client.DownloadCallRecord(ctx, callSid)
	if errors.Is(err, s3client.ErrNotFound) {
		return record, ErrRecordNotFound
	}
	return record, err
}

func (wrapper *s3StoreWrapper) close() {
	wrapper.client.Close()
}

type notifier interface {
	publishFollowUp(followUp types.FollowUp) error
	closeErrors() <-chan *amqp.Error
	reconnect() error
	close()
}

type rmqNotifierWrapper struct {
	client *rmq.Client
}

func (wrapper *rmqNotifierWrapper) publishFollowUp(followUp types.FollowUp) error {
	return wrapper.client.PublishFollowUp(followUp)
}

func (wrapper *rmqNotifierWrapper) closeErrors() <-chan *amqp.Error {
	return wrapper.client.CloseErrors()
}

func (wrapper *rmqNotifierWrapper) reconnect() error {
	return wrapper.client.Reconnect()
}

func (wrapper *rmqNotifierWrapper) close() {
	wrapper.client.Close()
}
