package s3client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/sts"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"mediscreen.com/prescreen/logger"
	"sync"
)

const maxRetries = 4

var (
	ErrNoSession = errors.New("no usable S3 session")
	ErrNotFound  = errors.New("object not found")
)

type EnvironmentConfig struct {
	BucketName  string `envconfig:"PRESCREEN_S3_BUCKET" required:"true"`
	Environment string `envconfig:"PRESCREEN_ENV" default:"prod"`
	Region      string `envconfig:"PRESCREEN_AWS_REGION" required:"true"`
	AwsEndpoint string `envconfig:"PRESCREEN_AWS_ENDPOINT_URL" default:""`
	AccessKeyID string `envconfig:"PRESCREEN_AWS_ACCESS_ID" default:""`
	AccessKey   string `envconfig:"PRESCREEN_AWS_ACCESS_KEY" default:""`
}

// Client writes archived calls to one bucket. The AWS session is shared
// and rebuilt after a failed request.
type Client struct {
	env    EnvironmentConfig
	logger zerolog.Logger
	sdkLog zerolog.Logger

	mu   sync.Mutex
	sess *session.Session
}

func New() (*Client, error) {
	clientLogger := logger.NewLogger("Archive S3 Client")
	env, err := readEnvironment(&clientLogger)
	if err != nil {
		return nil, err
	}
	client := &Client{
		env:    env,
		logger: clientLogger,
		sdkLog: logger.NewLogger("Archive S3 SDK"),
	}
	if _, err := client.refresh(); err != nil {
		return nil, err
	}
	return client, nil
}

// Upload stores body under key. A failed attempt is retried once on a
// fresh session.
func (client *Client) Upload(ctx context.Context, body []byte, key string) error {
	return client.withSession(key, func(sess *session.Session) error {
		uploader := s3manager.NewUploader(client.sdkSession(sess, key))
		_, err := uploader.UploadWithContext(ctx, &s3manager.UploadInput{
			Bucket:      aws.String(client.env.BucketName),
			Key:         aws.String(key),
			Body:        bytes.NewReader(body),
			ContentType: aws.String("application/json"),
		})
		return err
	})
}

func (client *Client) Download(ctx context.Context, key string) ([]byte, error) {
	var out []byte
	err := client.withSession(key, func(sess *session.Session) error {
		downloader := s3manager.NewDownloader(client.sdkSession(sess, key))
		buf := aws.NewWriteAtBuffer([]byte{})
		size, err := downloader.DownloadWithContext(ctx, buf, &s3.GetObjectInput{
			Bucket: aws.String(client.env.BucketName),
			Key:    aws.String(key),
		})
		if err != nil {
			return err
		}
		client.logger.Debug().Str("key", key).Msgf("Downloaded %v bytes", size)
		out = buf.Bytes()
		return nil
	})
	return out, err
}

// Close drops the session. The client can not be used afterwards.
func (client *Client) Close() {
	client.mu.Lock()
	client.sess = nil
	client.mu.Unlock()
	client.logger.Info().Msg("Closing client")
}

func (client *Client) withSession(key string, op func(*session.Session) error) error {
	client.mu.Lock()
	sess := client.sess
	client.mu.Unlock()
	if sess == nil {
		return ErrNoSession
	}
	err := op(sess)
	if err == nil {
		return nil
	}
	if isNotFound(err) {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	client.logger.Warn().Err(err).Str("key", key).Msg("S3 request failed, refreshing session")
	if sess, err = client.refresh(); err != nil {
		return err
	}
	return op(sess)
}

func isNotFound(err error) bool {
	var aerr awserr.Error
	return errors.As(err, &aerr) && aerr.Code() == s3.ErrCodeNoSuchKey
}

func (client *Client) sdkSession(sess *session.Session, key string) *session.Session {
	sdkLog := client.sdkLog.With().
		Str("key", key).
		Str("bucket", client.env.BucketName).
		Logger()
	return sess.Copy(&aws.Config{Logger: getLogger(sdkLog)})
}

// refresh builds a session from the instance role first and falls back to
// static keys from the environment.
func (client *Client) refresh() (*session.Session, error) {
	client.mu.Lock()
	defer client.mu.Unlock()

	sess, err := verifiedSession(client.roleConfig())
	if err == nil {
		client.sess = sess
		client.logger.Info().Msg("S3 session initialized from instance role")
		return sess, nil
	}
	client.logger.Info().Err(err).Msg("Instance role unavailable, trying env credentials")

	if client.env.AccessKeyID == "" || client.env.AccessKey == "" {
		client.sess = nil
		return nil, fmt.Errorf("%w: no static credentials configured", ErrNoSession)
	}
	sess, err = verifiedSession(client.staticConfig())
	if err != nil {
		client.sess = nil
		client.logger.Error().Err(err).Msg("Could not initialize S3 session")
		return nil, fmt.Errorf("%w: %v", ErrNoSession, err)
	}
	client.sess = sess
	client.logger.Info().Msg("S3 session initialized from env credentials")
	return sess, nil
}

func verifiedSession(cfg *aws.Config) (*session.Session, error) {
	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, err
	}
	if _, err := sts.New(sess).GetCallerIdentity(&sts.GetCallerIdentityInput{}); err != nil {
		return nil, err
	}
	return sess, nil
}

func (client *Client) roleConfig() *aws.Config {
	return aws.NewConfig().
		WithRegion(client.env.Region).
		WithMaxRetries(maxRetries).
		WithLogLevel(aws.LogDebug)
}

func (client *Client) staticConfig() *aws.Config {
	cfg := client.roleConfig().WithCredentials(
		credentials.NewStaticCredentials(client.env.AccessKeyID, client.env.AccessKey, ""))
	if client.env.Environment == "dev" && client.env.AwsEndpoint != "" {
		cfg = cfg.WithEndpoint(client.env.AwsEndpoint).WithS3ForcePathStyle(true)
	}
	return cfg
}

func readEnvironment(errLogger *zerolog.Logger) (EnvironmentConfig, error) {
	var config EnvironmentConfig
	if err := envconfig.Process("", &config); err != nil {
		errLogger.Err(err).Msg("Failed to get proper variables from environment")
		return config, err
	}
	return config, nil
}

// sdkLogAdapter routes SDK log lines into zerolog at debug level.
type sdkLogAdapter struct {
	logger zerolog.Logger
}

func getLogger(logger zerolog.Logger) aws.Logger {
	return &sdkLogAdapter{logger}
}

func (adapter *sdkLogAdapter) Log(v ...interface{}) {
	adapter.logger.Debug().Msg(fmt.Sprint(v...))
}
