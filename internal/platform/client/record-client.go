package client

import (
	"fmt"

	"github.com/go-resty/resty/v2"
)

const (
	records_endpoint = "/records"
	flush_endpoint   = "/admin/flush"
)

type SaveUserRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type RecordResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
	ModCount  uint64 `json:"mod_count"`
	UpdatedOn uint64 `json:"updated_on"`
}

type RecordClient struct {
	client    *resty.Client
	serverUrl string
}

func NewRecordClient(serverUrl string) *RecordClient {
	return &RecordClient{
		client:    resty.New(),
		serverUrl: serverUrl,
	}
}

func (c *RecordClient) SaveUser(req SaveUserRequest) (*RecordResponse, error) {
	var record RecordResponse
	uri := c.serverUrl + records_endpoint
	resp, err := c.client.R().SetResult(&record).SetBody(&req).Post(uri)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("save record: server replied %s", resp.Status())
	}
	return &record, nil
}

func (c *RecordClient) GetRecord(id string) (*RecordResponse, bool, error) {
	var record RecordResponse
	uri := fmt.Sprintf("%s%s/%s", c.serverUrl, records_endpoint, id)
	resp, err := c.client.R().SetResult(&record).Get(uri)
	if err != nil {
		return nil, false, err
	}
	if resp.StatusCode() == 404 {
		return nil, false, nil
	}
	if resp.IsError() {
		return nil, false, fmt.Errorf("get record %s: server replied %s", id, resp.Status())
	}
	return &record, true, nil
}

func (c *RecordClient) DeleteRecord(id string) (bool, error) {
	uri := fmt.Sprintf("%s%s/%s", c.serverUrl, records_endpoint, id)
	resp, err := c.client.R().Delete(uri)
	if err != nil {
		return false, err
	}
	if resp.StatusCode() == 404 {
		return false, nil
	}
	if resp.IsError() {
		return false, fmt.Errorf("delete record %s: server replied %s", id, resp.Status())
	}
	return true, nil
}

func (c *RecordClient) Flush() error {
	resp, err := c.client.R().Post(c.serverUrl + flush_endpoint)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("flush store: server replied %s", resp.Status())
	}
	return nil
}
