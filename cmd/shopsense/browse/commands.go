package browse

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"shopsense/internal/api"
	"shopsense/internal/catalog"
)

// boot loads the product catalog and session state concurrently. A failed
// session probe is fatal here only for transport errors; a missing session
// simply comes back as a nil user.
func (m Model) boot() tea.Cmd {
	client := m.client
	timeout := m.cfg.RequestTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		var (
			products []catalog.Product
			user     *catalog.User
		)
		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			p, err := client.Products(ctx)
			if err != nil {
				return err
			}
			products = p
			return nil
		})
		g.Go(func() error {
			u, err := client.CurrentUser(ctx)
			if err != nil {
				return err
			}
			user = u
			return nil
		})
		if err := g.Wait(); err != nil {
			return bootMsg{err: err}
		}
		return bootMsg{products: products, user: user}
	}
}

func (m Model) fetchProducts() tea.Cmd {
	client := m.client
	timeout := m.cfg.RequestTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		products, err := client.Products(ctx)
		if err != nil {
			return productsFailedMsg{err: err}
		}
		return productsLoadedMsg(products)
	}
}

// fetchDetail loads the product detail and its recommendations in
// parallel. Both results carry the product ID the fetch was issued for, so
// the store can discard them if the selection has moved on.
func (m Model) fetchDetail(id int) tea.Cmd {
	client := m.client
	timeout := m.cfg.RequestTimeout()
	limit := m.cfg.API.RecommendationLimit

	detail := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		product, err := client.Product(ctx, id)
		if err != nil {
			return detailFailedMsg{id: id, err: err}
		}
		return detailLoadedMsg{id: id, product: product}
	}
	recommendations := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return recommendationsMsg{id: id, recs: client.Recommendations(ctx, id, limit)}
	}
	return tea.Batch(detail, recommendations)
}

func (m Model) login(creds api.Credentials) tea.Cmd {
	client := m.client
	timeout := m.cfg.RequestTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		user, err := client.Login(ctx, creds)
		return authResultMsg{user: user, err: err}
	}
}

func (m Model) register(creds api.Credentials) tea.Cmd {
	client := m.client
	timeout := m.cfg.RequestTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		user, err := client.Register(ctx, creds)
		return authResultMsg{user: user, err: err}
	}
}

func (m Model) logout() tea.Cmd {
	client := m.client
	timeout := m.cfg.RequestTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return loggedOutMsg{err: client.Logout(ctx)}
	}
}

func (m Model) analyze(text string) tea.Cmd {
	client := m.client
	timeout := m.cfg.RequestTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		result, err := client.Analyze(ctx, text)
		return analysisMsg{result: result, err: err}
	}
}

// friendlyError turns an api error into the message the user sees.
func friendlyError(err error) string {
	var remote *api.RemoteError
	if errors.As(err, &remote) {
		return remote.Message
	}
	var transport *api.TransportError
	if errors.As(err, &transport) {
		return "Cannot reach the storefront service. Is it running?"
	}
	return err.Error()
}
