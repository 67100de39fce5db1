// Package delivery exposes one method per use case of the ordering service.
// Every method resolves the acting user by name and checks its role before
// touching the store.
package delivery

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gogo-delivery/models"
	"gogo-delivery/notify"
	"gogo-delivery/policy"
	"gogo-delivery/store"

	"github.com/go-playground/validator/v10"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"
)

const (
	defaultPreviewCacheSize = 256
	defaultMaxPreviewBytes  = 5 << 20
)

type Options struct {
	Publisher        notify.Publisher
	Logger           logrus.FieldLogger
	PreviewCacheSize int
	MaxPreviewBytes  int64
}

type Client struct {
	store      *store.Store
	publisher  notify.Publisher
	log        logrus.FieldLogger
	validate   *validator.Validate
	previews   *lru.Cache[previewKey, []byte]
	maxPreview int64
}

type previewKey struct {
	of models.PreviewOf
	id uint
}

func New(st *store.Store, opts Options) (*Client, error) {
	if opts.Publisher == nil {
		opts.Publisher = notify.NopPublisher{}
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	if opts.PreviewCacheSize <= 0 {
		opts.PreviewCacheSize = defaultPreviewCacheSize
	}
	if opts.MaxPreviewBytes <= 0 {
		opts.MaxPreviewBytes = defaultMaxPreviewBytes
	}
	previews, err := lru.New[previewKey, []byte](opts.PreviewCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create preview cache: %w", err)
	}
	return &Client{
		store:      st,
		publisher:  opts.Publisher,
		log:        opts.Logger,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
		previews:   previews,
		maxPreview: opts.MaxPreviewBytes,
	}, nil
}

// Ping reports whether the database is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.store.Ping(ctx)
}

// actor resolves the acting user and checks that its role may perform the action.
func (c *Client) actor(ctx context.Context, username string, action policy.Action) (models.User, error) {
	user, err := c.store.UserByName(ctx, username)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to resolve user %q: %w", username, err)
	}
	if action == "" {
		return user, nil
	}
	if err := policy.Authorize(user.Role, action); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (c *Client) user(ctx context.Context, username string) (models.User, error) {
	return c.actor(ctx, username, "")
}

// check runs the struct validation rules and reports failures as a rule violation.
func (c *Client) check(v any) error {
	err := c.validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &models.RuleError{Reason: fmt.Sprintf("invalid %s: failed on %q", fe.Field(), fe.Tag())}
	}
	return &models.RuleError{Reason: err.Error()}
}

// mapDuplicate replaces a unique-constraint failure with the rule the caller broke.
func mapDuplicate(err error, rule *models.RuleError) error {
	if errors.Is(err, store.ErrDuplicate) {
		return rule
	}
	return err
}

func (c *Client) readPreview(r io.Reader) ([]byte, error) {
	if r == nil {
		return nil, nil
	}
	data, err := io.ReadAll(io.LimitReader(r, c.maxPreview+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read preview: %w", err)
	}
	if int64(len(data)) > c.maxPreview {
		return nil, models.ErrPreviewTooLarge
	}
	if len(data) == 0 {
		return nil, nil
	}
	return data, nil
}

func (c *Client) publish(ctx context.Context, sent ...models.Notification) {
	if len(sent) == 0 {
		return
	}
	events := make([]notify.Event, 0, len(sent))
	for _, n := range sent {
		events = append(events, notify.NewEvent(n))
	}
	if err := c.publisher.Publish(ctx, events...); err != nil {
		c.log.WithError(err).WithField("events", len(events)).Warn("failed to publish notification events")
	}
}
