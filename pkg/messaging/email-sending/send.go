package emailsending

import (
	"errors"
	"time"

	httpclient "github.com/0himanshu3/CiviK-Link/pkg/http-client"
)

var (
	HttpClient *httpclient.ClientConfig
)

type SmtpBridgeConfig struct {
	URL            string        `json:"url" yaml:"url"`
	APIKey         string        `json:"api_key" yaml:"api_key"`
	RequestTimeout time.Duration `json:"request_timeout" yaml:"request_timeout"`
}

func InitMessageSendingVariables(newClientConfig *httpclient.ClientConfig) {
	HttpClient = newClientConfig
}

type SendEmailReq struct {
	To       []string `json:"to"`
	Subject  string   `json:"subject"`
	Content  string   `json:"content"`
	HighPrio bool     `json:"highPrio"`
}

// SendEmail hands the message to the smtp bridge. Callers decide what a
// dispatch failure means for their flow.
func SendEmail(to []string, subject string, content string, highPrio bool) error {
	if HttpClient == nil || HttpClient.RootURL == "" {
		return errors.New("connection to smtp bridge not initialized")
	}

	sendEmailReq := SendEmailReq{
		To:       to,
		Subject:  subject,
		Content:  content,
		HighPrio: highPrio,
	}
	resp, err := HttpClient.RunHTTPcall("/send-email", sendEmailReq)
	if err == nil && resp != nil {
		errMsg, hasError := resp["error"]
		if hasError {
			err = errors.New(errMsg.(string))
		}
	}
	return err
}
