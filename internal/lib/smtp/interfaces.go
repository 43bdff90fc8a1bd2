// Package smtp открывает аутентифицированные STARTTLS-сессии с почтовым сервером.
package smtp

import "io"

// Client SMTP-сессия.
type Client interface {
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}

// TransportInterface создает SMTP-сессии от имени одного отправителя.
type TransportInterface interface {
	Connect() (Client, error)
	GetSMTPUser() string
}
