// Package onesignal delivers push notifications through the OneSignal REST
// API. Devices are addressed by the account email tag set at app login.
package onesignal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"tolkbook/internal/core/ports"
	"tolkbook/internal/pkg/errs"
)

const (
	apiURL = "https://onesignal.com/api/v1/notifications"

	normalSoundIOS       = "normal_booking.wav"
	normalSoundAndroid   = "normal_booking"
	urgentSoundIOS       = "emergency_booking.wav"
	urgentSoundAndroid   = "emergency_booking"
	sendAfterTimeFormat  = "2006-01-02 15:04:05 GMT-0700"
	defaultClientTimeout = 10 * time.Second
)

// Sender implements ports.PushSender against the OneSignal API.
type Sender struct {
	appID   string
	restKey string
	client  *http.Client
}

// NewSender creates a OneSignal sender for the given application.
func NewSender(appID, restKey string) (*Sender, error) {
	if appID == "" || restKey == "" {
		return nil, fmt.Errorf("onesignal app id and rest key are required")
	}
	return &Sender{
		appID:   appID,
		restKey: restKey,
		client:  &http.Client{Timeout: defaultClientTimeout},
	}, nil
}

// tag is one entry of the OneSignal tag filter list. Recipient entries
// carry key/relation/value; separator entries carry only the OR operator.
type tag struct {
	Key      string `json:"key,omitempty"`
	Relation string `json:"relation,omitempty"`
	Value    string `json:"value,omitempty"`
	Operator string `json:"operator,omitempty"`
}

type notification struct {
	AppID        string            `json:"app_id"`
	Tags         []tag             `json:"tags"`
	Data         map[string]any    `json:"data"`
	Title        map[string]string `json:"title"`
	Contents     map[string]string `json:"contents"`
	IOSBadgeType string            `json:"ios_badgeType"`
	IOSBadgeCnt  int               `json:"ios_badgeCount"`
	AndroidSound string            `json:"android_sound"`
	IOSSound     string            `json:"ios_sound"`
	SendAfter    string            `json:"send_after,omitempty"`
}

// Send submits one push notification. Recipients are OR-joined email tag
// filters; urgent messages use the emergency sound pair, and a non-nil
// DeliverAfter becomes the provider-side send_after schedule.
func (s *Sender) Send(ctx context.Context, msg ports.PushMessage) error {
	if len(msg.Recipients) == 0 {
		return nil
	}

	data := map[string]any{
		"job_id": msg.JobID.String(),
	}
	if msg.Payload != nil {
		data["notification_type"] = msg.Payload.NotificationType()
		data["payload"] = msg.Payload
	}

	body := notification{
		AppID:        s.appID,
		Tags:         emailTags(msg.Recipients),
		Data:         data,
		Title:        map[string]string{"en": msg.Title},
		Contents:     msg.Contents,
		IOSBadgeType: "Increase",
		IOSBadgeCnt:  1,
		AndroidSound: normalSoundAndroid,
		IOSSound:     normalSoundIOS,
	}
	if msg.Urgent {
		body.AndroidSound = urgentSoundAndroid
		body.IOSSound = urgentSoundIOS
	}
	if msg.DeliverAfter != nil {
		body.SendAfter = msg.DeliverAfter.Format(sendAfterTimeFormat)
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Basic "+s.restKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return errs.NewDeliveryFailureError("push", msg.JobID.String(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errs.NewDeliveryFailureError("push", msg.JobID.String(),
			fmt.Errorf("onesignal returned status %d", resp.StatusCode))
	}
	return nil
}

// emailTags builds the OR-joined email filter list the provider expects:
// one tag per recipient, with an OR operator entry between consecutive
// recipients.
func emailTags(recipients []ports.PushRecipient) []tag {
	tags := make([]tag, 0, 2*len(recipients)-1)
	for i, r := range recipients {
		if i > 0 {
			tags = append(tags, tag{Operator: "OR"})
		}
		tags = append(tags, tag{Key: "email", Relation: "=", Value: r.Email})
	}
	return tags
}
