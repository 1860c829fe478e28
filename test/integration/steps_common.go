package integration

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"sort"
	"strings"

	"github.com/cucumber/godog"

	"github.com/personahq/persona/pkg/model"
	"github.com/personahq/persona/pkg/server/store"
	storegorm "github.com/personahq/persona/pkg/server/store/gorm"
)

// StepsContext holds state shared between step definitions
type StepsContext struct {
	tc           *TestContext
	response     *http.Response
	responseBody []byte
	apiKeys      map[string]string
	userIDs      map[string]uint
	tokens       map[string]string
	currentUser  string
	clientID     string
	clientSecret string
	authCode     string
	accessToken  string
}

// NewStepsContext creates a new steps context
func NewStepsContext(tc *TestContext) *StepsContext {
	return &StepsContext{
		tc:      tc,
		apiKeys: make(map[string]string),
		userIDs: make(map[string]uint),
		tokens:  make(map[string]string),
	}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	// Background steps
	sc.Step(`^a Persona server is running$`, s.aPersonaServerIsRunning)
	sc.Step(`^a user "([^"]*)" exists with role "([^"]*)"$`, s.aUserExistsWithRole)
	sc.Step(`^user "([^"]*)" has a (public|friends|private|organization) "([^"]*)" identity named "([^"]*)" "([^"]*)"$`, s.userHasIdentity)
	sc.Step(`^I am logged in as "([^"]*)"$`, s.iAmLoggedInAs)

	// Authentication steps
	sc.Step(`^I log in as "([^"]*)" with the correct API key$`, s.iLogInWithCorrectAPIKey)
	sc.Step(`^I log in as "([^"]*)" with API key "([^"]*)"$`, s.iLogInWithAPIKey)

	// Identity steps
	sc.Step(`^I request the "([^"]*)" identity of user "([^"]*)"$`, s.iRequestIdentityOfUser)
	sc.Step(`^I list my identities$`, s.iListMyIdentities)

	// OAuth steps
	sc.Step(`^an OAuth client "([^"]*)" is registered$`, s.anOAuthClientIsRegistered)
	sc.Step(`^I authorize the client for the "([^"]*)" context$`, s.iAuthorizeTheClient)
	sc.Step(`^the client exchanges the code for a token$`, s.theClientExchangesTheCode)
	sc.Step(`^the client exchanges the code again$`, s.theClientExchangesTheCode)
	sc.Step(`^I request userinfo with the client token$`, s.iRequestUserinfo)

	// Response steps
	sc.Step(`^the response status should be (\d+)$`, s.theResponseStatusShouldBe)
	sc.Step(`^I should receive a valid access token$`, s.iShouldReceiveAValidAccessToken)
	sc.Step(`^the response should contain field "([^"]*)" with value "([^"]*)"$`, s.theResponseShouldContainFieldWithValue)
	sc.Step(`^the response should not contain field "([^"]*)"$`, s.theResponseShouldNotContainField)
	sc.Step(`^an access log entry should record user "([^"]*)" viewing an identity of "([^"]*)"$`, s.anAccessLogEntryShouldExist)
	sc.Step(`^the latest access log entry for "([^"]*)" should list exactly the disclosed fields$`, s.latestAccessLogListsDisclosedFields)
}

// Background steps

func (s *StepsContext) aPersonaServerIsRunning() error {
	// Server is already running via TestContext
	return nil
}

func (s *StepsContext) aUserExistsWithRole(username, roleName string) error {
	if _, ok := s.userIDs[username]; ok {
		return nil
	}

	role, err := model.RoleString(roleName)
	if err != nil {
		return fmt.Errorf("unknown role %q", roleName)
	}

	users := storegorm.NewUsersStore(s.tc.DB)

	// Scenarios share one database; pick up users an earlier scenario made.
	if existing, err := users.GetByUsername(username); err == nil {
		key, err := users.APIKey(existing.ID)
		if err != nil {
			return err
		}
		s.userIDs[username] = existing.ID
		s.apiKeys[username] = string(key)
		return nil
	}

	apiKey, err := model.GenerateAPIKey()
	if err != nil {
		return err
	}

	user := &model.User{
		Username: username,
		Email:    username + "@example.com",
		IsActive: true,
	}
	if err := users.Create(user, role, apiKey); err != nil {
		return fmt.Errorf("failed to create user %s: %w", username, err)
	}

	s.apiKeys[username] = apiKey
	s.userIDs[username] = user.ID
	return nil
}

func (s *StepsContext) userHasIdentity(username, visibilityName, contextName, givenName, familyName string) error {
	userID, ok := s.userIDs[username]
	if !ok {
		return fmt.Errorf("unknown user %q", username)
	}

	context, err := model.ContextString(contextName)
	if err != nil {
		return err
	}
	visibility, err := model.VisibilityString(visibilityName)
	if err != nil {
		return err
	}

	identities := storegorm.NewIdentitiesStore(s.tc.DB)
	err = identities.Create(&model.Identity{
		UserID:     userID,
		Context:    context,
		Locale:     model.DefaultLocale,
		GivenName:  givenName,
		FamilyName: familyName,
		Visibility: visibility,
		IsActive:   true,
	})
	if errors.Is(err, store.ErrDuplicateIdentity) {
		// Created by an earlier scenario.
		return nil
	}
	return err
}

func (s *StepsContext) iAmLoggedInAs(username string) error {
	if _, ok := s.tokens[username]; !ok {
		if err := s.iLogInWithCorrectAPIKey(username); err != nil {
			return err
		}
		if s.response.StatusCode != http.StatusOK {
			return fmt.Errorf("login as %s failed with status %d", username, s.response.StatusCode)
		}
		var body struct {
			Token string `json:"token"`
		}
		if err := json.Unmarshal(s.responseBody, &body); err != nil {
			return err
		}
		s.tokens[username] = body.Token
	}
	s.currentUser = username
	return nil
}

// Authentication steps

func (s *StepsContext) iLogInWithCorrectAPIKey(username string) error {
	apiKey, ok := s.apiKeys[username]
	if !ok {
		return fmt.Errorf("no API key recorded for %q", username)
	}
	return s.iLogInWithAPIKey(username, apiKey)
}

func (s *StepsContext) iLogInWithAPIKey(username, apiKey string) error {
	req, err := http.NewRequest("GET", s.tc.ServerURL+"/authn/login", nil)
	if err != nil {
		return err
	}
	req.SetBasicAuth(username, apiKey)
	return s.do(req)
}

// Identity steps

func (s *StepsContext) iRequestIdentityOfUser(contextName, username string) error {
	userID, ok := s.userIDs[username]
	if !ok {
		return fmt.Errorf("unknown user %q", username)
	}

	req, err := s.authedRequest("GET", fmt.Sprintf("%s/api/v1/users/%d/identity", s.tc.ServerURL, userID), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept-Context", contextName)
	return s.do(req)
}

func (s *StepsContext) iListMyIdentities() error {
	req, err := s.authedRequest("GET", s.tc.ServerURL+"/api/v1/identities", nil)
	if err != nil {
		return err
	}
	return s.do(req)
}

// OAuth steps

func (s *StepsContext) anOAuthClientIsRegistered(name string) error {
	s.clientID = "test-client"
	s.clientSecret = "test-secret"

	oauth := storegorm.NewOAuthStore(s.tc.DB)
	if _, err := oauth.GetClient(s.clientID); err == nil {
		return nil
	}
	return oauth.CreateClient(&model.OAuthClient{
		ClientID:    s.clientID,
		Secret:      s.clientSecret,
		Name:        name,
		RedirectURI: "http://localhost:8080/oauth/callback/",
	})
}

func (s *StepsContext) iAuthorizeTheClient(contextName string) error {
	payload, err := json.Marshal(map[string]interface{}{
		"client_id":        s.clientID,
		"selected_context": contextName,
		"scope":            "read",
		"allow":            true,
	})
	if err != nil {
		return err
	}

	req, err := s.authedRequest("POST", s.tc.ServerURL+"/oauth/authorize", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if err := s.do(req); err != nil {
		return err
	}

	var body struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(s.responseBody, &body); err != nil {
		return err
	}
	s.authCode = body.Code
	return nil
}

func (s *StepsContext) theClientExchangesTheCode() error {
	form := url.Values{
		"grant_type":    {"authorization_code"},
		"code":          {s.authCode},
		"client_id":     {s.clientID},
		"client_secret": {s.clientSecret},
	}

	req, err := http.NewRequest("POST", s.tc.ServerURL+"/oauth/token", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if err := s.do(req); err != nil {
		return err
	}

	if s.response.StatusCode == http.StatusOK {
		var body struct {
			AccessToken string `json:"access_token"`
		}
		if err := json.Unmarshal(s.responseBody, &body); err != nil {
			return err
		}
		s.accessToken = body.AccessToken
	}
	return nil
}

func (s *StepsContext) iRequestUserinfo() error {
	req, err := http.NewRequest("GET", s.tc.ServerURL+"/oauth/userinfo", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.accessToken)
	return s.do(req)
}

// Response steps

func (s *StepsContext) theResponseStatusShouldBe(status int) error {
	if s.response == nil {
		return fmt.Errorf("no response recorded")
	}
	if s.response.StatusCode != status {
		return fmt.Errorf("expected status %d, got %d (body: %s)", status, s.response.StatusCode, s.responseBody)
	}
	return nil
}

func (s *StepsContext) iShouldReceiveAValidAccessToken() error {
	var body struct {
		Token     string `json:"token"`
		TokenType string `json:"token_type"`
	}
	if err := json.Unmarshal(s.responseBody, &body); err != nil {
		return err
	}
	if body.Token == "" {
		return fmt.Errorf("no token in response: %s", s.responseBody)
	}
	if body.TokenType != "Bearer" {
		return fmt.Errorf("expected token_type Bearer, got %q", body.TokenType)
	}
	return nil
}

func (s *StepsContext) theResponseShouldContainFieldWithValue(field, value string) error {
	var body map[string]interface{}
	if err := json.Unmarshal(s.responseBody, &body); err != nil {
		return err
	}
	got, ok := body[field]
	if !ok {
		return fmt.Errorf("field %q missing from response: %s", field, s.responseBody)
	}
	if fmt.Sprintf("%v", got) != value {
		return fmt.Errorf("expected %q = %q, got %v", field, value, got)
	}
	return nil
}

func (s *StepsContext) theResponseShouldNotContainField(field string) error {
	var body map[string]interface{}
	if err := json.Unmarshal(s.responseBody, &body); err != nil {
		return err
	}
	if _, ok := body[field]; ok {
		return fmt.Errorf("field %q unexpectedly present in response: %s", field, s.responseBody)
	}
	return nil
}

func (s *StepsContext) anAccessLogEntryShouldExist(viewer, owner string) error {
	viewerID, ok := s.userIDs[viewer]
	if !ok {
		return fmt.Errorf("unknown user %q", viewer)
	}
	ownerID, ok := s.userIDs[owner]
	if !ok {
		return fmt.Errorf("unknown user %q", owner)
	}

	var count int64
	err := s.tc.DB.Raw(`
		SELECT COUNT(*) FROM access_logs
		JOIN identities ON identities.id = access_logs.identity_id
		WHERE access_logs.accessed_by = ? AND identities.user_id = ?
	`, viewerID, ownerID).Scan(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("no access log entry for viewer %d on identities of %d", viewerID, ownerID)
	}
	return nil
}

func (s *StepsContext) latestAccessLogListsDisclosedFields(viewer string) error {
	viewerID, ok := s.userIDs[viewer]
	if !ok {
		return fmt.Errorf("unknown user %q", viewer)
	}

	var raw []byte
	row := s.tc.DB.Raw(`
		SELECT accessed_fields FROM access_logs
		WHERE accessed_by = ?
		ORDER BY id DESC
		LIMIT 1
	`, viewerID).Row()
	if err := row.Scan(&raw); err != nil {
		return fmt.Errorf("no access log entry for viewer %d: %w", viewerID, err)
	}

	var recorded []string
	if err := json.Unmarshal(raw, &recorded); err != nil {
		return err
	}
	sort.Strings(recorded)

	var body map[string]interface{}
	if err := json.Unmarshal(s.responseBody, &body); err != nil {
		return err
	}
	disclosed := make([]string, 0, len(body))
	for field := range body {
		disclosed = append(disclosed, field)
	}
	sort.Strings(disclosed)

	if !reflect.DeepEqual(recorded, disclosed) {
		return fmt.Errorf("access log recorded %v but the response disclosed %v", recorded, disclosed)
	}
	return nil
}

// helpers

func (s *StepsContext) authedRequest(method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, err
	}
	// No login yet means the request goes out unauthenticated.
	if token, ok := s.tokens[s.currentUser]; ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

func (s *StepsContext) do(req *http.Request) error {
	resp, err := s.tc.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	s.response = resp
	s.responseBody = body
	return nil
}
