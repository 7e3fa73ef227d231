package mailer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	bookingModel "flight-booking/models/booking"
	"flight-booking/utils"
)

// Client talks to the transactional email delivery API. Confirmation and
// receipt emails are best-effort; booking flows never fail on mail errors.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	from       string
}

func NewClient(baseURL, apiKey string) *Client {
	from := os.Getenv("MAIL_FROM_ADDRESS")
	if from == "" {
		from = "bookings@flight-booking.local"
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
		apiKey:  apiKey,
		from:    from,
	}
}

func (c *Client) send(to, subject, html string) error {
	body, err := json.Marshal(sendRequest{
		From:    c.from,
		To:      to,
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequest(http.MethodPost, c.baseURL+"/emails", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return errors.New("mail API returned non-OK status: " + resp.Status)
	}

	var apiResp sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return err
	}
	return nil
}

// SendBookingConfirmation emails the booking locator to the contact address.
// For guest bookings the locator plus this address is what later unlocks
// lookup and payment, so the mail goes to the caller-supplied contact.
func (c *Client) SendBookingConfirmation(b *bookingModel.Booking) error {
	subject := fmt.Sprintf("Your booking %s is reserved", b.LocatorCode)
	html := fmt.Sprintf(
		`<h2>Booking reserved</h2>
<p>Your booking reference is <strong>%s</strong>.</p>
<p>%s → %s, flight %s, departing %s.</p>
<p>Total: %s. Complete payment to confirm your seats.</p>
<p>Keep this reference together with the email address you booked with; you
will need both to view or pay for the booking.</p>`,
		b.LocatorCode,
		b.Origin, b.Destination, b.FlightNumber,
		b.DepartureAt.Format("Mon, 02 Jan 2006 15:04 MST"),
		utils.FormatAmount(b.AmountCents, b.Currency),
	)
	return c.send(b.ContactEmail, subject, html)
}

// SendPaymentReceipt emails a receipt once payment succeeded.
func (c *Client) SendPaymentReceipt(b *bookingModel.Booking) error {
	subject := fmt.Sprintf("Payment received for booking %s", b.LocatorCode)
	html := fmt.Sprintf(
		`<h2>Payment received</h2>
<p>Booking <strong>%s</strong> is confirmed.</p>
<p>%s → %s, flight %s, departing %s.</p>
<p>Amount paid: %s.</p>`,
		b.LocatorCode,
		b.Origin, b.Destination, b.FlightNumber,
		b.DepartureAt.Format("Mon, 02 Jan 2006 15:04 MST"),
		utils.FormatAmount(b.AmountCents, b.Currency),
	)
	return c.send(b.ContactEmail, subject, html)
}
