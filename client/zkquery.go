package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avast/retry-go"
	"github.com/google/uuid"
	"github.com/imroc/req/v3"
	log "github.com/sirupsen/logrus"
)

const (
	initialPollDelay = 10 * time.Millisecond
	maxPollDelay     = 30 * time.Minute
	// The delay doubles from 10ms to the 30 minute cap within the first
	// couple dozen polls; the remaining attempts all wait the full cap.
	maxPollAttempts = 72
)

var errQueryPending = errors.New("zk query still pending")

// ZkQueryClient drives query jobs through the ZK Query API: submit, poll
// status until terminal, fetch results.
type ZkQueryClient struct {
	baseURL string
	client  *req.Client
	auth    *Authenticator
}

func NewZkQueryClient(baseURL string, auth *Authenticator) *ZkQueryClient {
	return &ZkQueryClient{
		baseURL: baseURL,
		client:  req.C(),
		auth:    auth,
	}
}

func (z *ZkQueryClient) post(ctx context.Context, path string, body, out interface{}) error {
	token, err := z.auth.AccessToken(ctx)
	if err != nil {
		return err
	}
	res, err := z.client.R().
		SetContext(ctx).
		SetBearerAuthToken(token).
		SetBody(body).
		SetSuccessResult(out).
		Post(z.baseURL + path)
	if err != nil {
		return err
	}
	if res.IsErrorState() {
		return fmt.Errorf("zk query api returned %d for POST %s", res.StatusCode, path)
	}
	return nil
}

func (z *ZkQueryClient) get(ctx context.Context, path string, out interface{}) error {
	token, err := z.auth.AccessToken(ctx)
	if err != nil {
		return err
	}
	res, err := z.client.R().
		SetContext(ctx).
		SetBearerAuthToken(token).
		SetSuccessResult(out).
		Get(z.baseURL + path)
	if err != nil {
		return err
	}
	if res.IsErrorState() {
		return fmt.Errorf("zk query api returned %d for GET %s", res.StatusCode, path)
	}
	return nil
}

// Submit starts a query job.
func (z *ZkQueryClient) Submit(ctx context.Context, request *QuerySubmitRequest) (*QuerySubmitResponse, error) {
	var out QuerySubmitResponse
	if err := z.post(ctx, "/v1/zkquery", request, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Status fetches a job's current lifecycle state.
func (z *ZkQueryClient) Status(ctx context.Context, queryID uuid.UUID) (*QueryStatusResponse, error) {
	var out QueryStatusResponse
	if err := z.get(ctx, fmt.Sprintf("/v1/zkquery/%s/status", queryID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Results fetches a completed job's proof material.
func (z *ZkQueryClient) Results(ctx context.Context, queryID uuid.UUID) (*ZkQueryResults, error) {
	var out ZkQueryResults
	if err := z.get(ctx, fmt.Sprintf("/v1/zkquery/%s/results", queryID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BuildPlan compiles SQL into a serialized proof plan via the API; the
// planner stays external.
func (z *ZkQueryClient) BuildPlan(ctx context.Context, request *QueryPlanRequest) (*QueryPlanResponse, error) {
	var out QueryPlanResponse
	if err := z.post(ctx, "/v1/zkquery/build-plan", request, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// waitForTerminalStatus polls until the job reaches a terminal state,
// doubling the delay from 10ms up to a 30 minute cap.
func (z *ZkQueryClient) waitForTerminalStatus(ctx context.Context, queryID uuid.UUID) (ZkQueryStatus, error) {
	var status ZkQueryStatus
	err := retry.Do(
		func() error {
			resp, err := z.Status(ctx, queryID)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			status = resp.Status
			if !status.Terminal() {
				return errQueryPending
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(maxPollAttempts),
		retry.Delay(initialPollDelay),
		retry.MaxDelay(maxPollDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
	return status, err
}

// Run submits a query and blocks until its results are available.
func (z *ZkQueryClient) Run(ctx context.Context, request *QuerySubmitRequest) (*ZkQueryResults, error) {
	submitted, err := z.Submit(ctx, request)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"queryId": submitted.QueryID,
		"scheme":  submitted.CommitmentScheme.String(),
	}).Debug("ZkQuerySubmitted")

	status, err := z.waitForTerminalStatus(ctx, submitted.QueryID)
	if err != nil {
		return nil, err
	}
	if status != StatusDone {
		return nil, fmt.Errorf("zk query %s ended with status %s", submitted.QueryID, status)
	}
	return z.Results(ctx, submitted.QueryID)
}
