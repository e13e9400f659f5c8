package googlecalendar

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// ErrAuthRequired means no usable token file exists yet; run the authorization flow first.
var ErrAuthRequired = errors.New("google calendar authorization required")

// NewOAuthConfig reads an OAuth client definition downloaded from the Google Cloud console.
func NewOAuthConfig(credentialsFile string) (*oauth2.Config, error) {
	b, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read client secret file: %w", err)
	}
	cfg, err := google.ConfigFromJSON(b, gcal.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse client secret file: %w", err)
	}
	return cfg, nil
}

// AuthURL is the consent page the user visits to obtain an authorization code.
func AuthURL(cfg *oauth2.Config) string {
	return cfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// ExchangeCode trades an authorization code for a token and stores it in tokenFile.
func ExchangeCode(ctx context.Context, cfg *oauth2.Config, code, tokenFile string) error {
	tok, err := cfg.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("unable to retrieve token from web: %w", err)
	}
	return saveToken(tokenFile, tok)
}

func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(tok)
	return tok, err
}

func saveToken(path string, token *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("unable to cache oauth token: %w", err)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}

// GetCalendarService builds a Calendar client from the token stored in tokenFile.
func GetCalendarService(ctx context.Context, cfg *oauth2.Config, tokenFile string, log *zap.Logger) (*gcal.Service, error) {
	tok, err := tokenFromFile(tokenFile)
	if err != nil {
		log.Warn("no usable token, visit the URL and pass the code with -auth-code",
			zap.String("token_file", tokenFile), zap.String("url", AuthURL(cfg)), zap.Error(err))
		return nil, ErrAuthRequired
	}

	srv, err := gcal.NewService(ctx, option.WithHTTPClient(cfg.Client(ctx, tok)))
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve Calendar client: %w", err)
	}
	log.Debug("google calendar client ready")
	return srv, nil
}

// GetAllEvents retrieves all events from the specified Google Calendar.
func GetAllEvents(ctx context.Context, service *gcal.Service, calendarID string) ([]*gcal.Event, error) {
	var allEvents []*gcal.Event
	pageToken := ""
	for {
		events, err := service.Events.List(calendarID).PageToken(pageToken).Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("error fetching events from Google Calendar: %w", err)
		}
		allEvents = append(allEvents, events.Items...)

		pageToken = events.NextPageToken
		if pageToken == "" {
			break
		}
	}
	return allEvents, nil
}

// deleteEvent treats an event that is already gone as deleted.
func deleteEvent(ctx context.Context, service *gcal.Service, calendarID, eventID string) error {
	err := service.Events.Delete(calendarID, eventID).Context(ctx).Do()
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == 410 {
		return nil
	}
	return err
}
