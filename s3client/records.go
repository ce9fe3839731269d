package s3client

import (
	"context"
	"encoding/json"
	"mediscreen.com/prescreen/types"
	"mediscreen.com/prescreen/utils"
	"path"
)

// RecordKey shards call records by a hash of the call id so that one
// prefix never holds every call.
func RecordKey(callSid string) string {
	return path.Join("conversations", utils.ShardPrefix(callSid), callSid+".json")
}

func (client *Client) UploadCallRecord(ctx context.Context, record types.CallRecord) (string, error) {
	b, err := json.Marshal(record)
	if err != nil {
		return "", err
	}
	key := RecordKey(record.CallSid)
	if err := client.Upload(ctx, b, key); err != nil {
		return "", err
	}
	return key, nil
}

func (client *Client) DownloadCallRecord(ctx context.Context, callSid string) (types.CallRecord, error) {
	var record types.CallRecord
	b, err := client.Download(ctx, RecordKey(callSid))
	if err != nil {
		return record, err
	}
	err = json.Unmarshal(b, &record)
	return record, err
}
