package mailer

// sendRequest is the payload for the email delivery API.
type sendRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// sendResponse is the delivery API's acknowledgment.
type sendResponse struct {
	ID string `json:"id"`
}
