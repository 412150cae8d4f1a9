package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/pkordes/fieldtrip-widget/internal/domain"
)

// User-facing messages for failed submissions.
const (
	MsgNetworkError  = "Network error. Please check your connection and try again."
	MsgCheckDetails  = "Please check your information and try again."
	MsgPaymentFailed = "Payment processing failed. Please try again."
)

const headerRequestID = "X-Request-ID"

// SubmitPayment POSTs req to the payment endpoint and interprets the reply:
//
//   - request never completed: ResultNetworkError
//   - 201 Created: ResultSucceeded with the decoded confirmation
//   - 400 Bad Request: ResultRejected with the field errors; the message is
//     the first of them, or MsgCheckDetails when there are none
//   - anything else: ResultServerError, body ignored
//
// Every path yields a result; there is no error return.
func (c *Client) SubmitPayment(ctx context.Context, req domain.PaymentRequest) domain.PaymentResult {
	const op = "client.Client.SubmitPayment"
	log := c.log.With("op", op, "field_trip_id", req.FieldTripID)

	body, err := json.Marshal(req)
	if err != nil {
		// PaymentRequest holds only strings; this cannot happen in practice.
		log.ErrorContext(ctx, "encode payment request", "error", err)
		return c.paymentResult(failure(domain.ResultServerError, MsgPaymentFailed, nil))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoints.Payment, bytes.NewReader(body))
	if err != nil {
		log.ErrorContext(ctx, "build payment request", "error", err)
		return c.paymentResult(failure(domain.ResultNetworkError, MsgNetworkError, nil))
	}
	requestID := uuid.NewString()
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(headerRequestID, requestID)
	log = log.With("request_id", requestID)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		log.WarnContext(ctx, "payment request failed", "error", err)
		return c.paymentResult(failure(domain.ResultNetworkError, MsgNetworkError, nil))
	}
	defer drain(resp.Body)

	switch resp.StatusCode {
	case http.StatusCreated:
		var data domain.PaymentResponse
		if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
			log.ErrorContext(ctx, "decode payment confirmation", "error", err)
			return c.paymentResult(failure(domain.ResultServerError, MsgPaymentFailed, nil))
		}
		log.InfoContext(ctx, "payment accepted", "transaction_id", data.ID)
		return c.paymentResult(domain.PaymentResult{Kind: domain.ResultSucceeded, Data: &data})

	case http.StatusBadRequest:
		var apiErr domain.APIError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil {
			log.WarnContext(ctx, "decode payment rejection", "error", err)
			apiErr = nil
		}
		msg, ok := apiErr.Headline()
		if !ok {
			msg = MsgCheckDetails
		}
		log.InfoContext(ctx, "payment rejected", "fields", len(apiErr))
		return c.paymentResult(failure(domain.ResultRejected, msg, apiErr))

	default:
		log.WarnContext(ctx, "payment failed", "status", resp.StatusCode)
		return c.paymentResult(failure(domain.ResultServerError, MsgPaymentFailed, nil))
	}
}

func failure(kind domain.ResultKind, msg string, errs domain.APIError) domain.PaymentResult {
	return domain.PaymentResult{Kind: kind, Message: msg, Errors: errs}
}

func (c *Client) paymentResult(r domain.PaymentResult) domain.PaymentResult {
	c.observePayment(r.Kind.String())
	return r
}
