// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agroconnect/agroconnect/apiclient"
	"github.com/agroconnect/agroconnect/models"
	"github.com/agroconnect/agroconnect/navigation"
	"github.com/agroconnect/agroconnect/router"
	"github.com/agroconnect/agroconnect/session"
	"github.com/agroconnect/agroconnect/testutil"
)

// TestMarketplaceAgainstBackend drives two clients, a farmer and a buyer,
// against the real API:
// 1. Both register and land on their dashboards
// 2. Farmer lists a crop
// 3. Buyer searches, finds it and sends an inquiry
// 4. Farmer's dashboard shows the inquiry
// 5. Farmer reloads from disk, deletes the crop and logs out
func TestMarketplaceAgainstBackend(t *testing.T) {
	db := testutil.SetupTestDB(t)
	srv := httptest.NewServer(router.NewRouter(db, testutil.GetTestConfig()))
	t.Cleanup(func() {
		srv.Close()
		db.Close()
	})

	ctx := context.Background()
	api := apiclient.New(srv.URL)
	_, err := api.InitMarketPrices(ctx)
	require.NoError(t, err)

	farmerFile := filepath.Join(t.TempDir(), "farmer.json")
	farmerApp := NewApp(api, session.NewStore(session.NewFileStorage(farmerFile)), &recorder{})
	buyerApp := NewApp(api, session.NewStore(session.NewMemoryStorage()), &recorder{})

	// Step 1
	register := func(app *App, form RegisterForm, expected navigation.View) {
		authView, err := app.AuthView()
		require.NoError(t, err)
		_, err = authView.Register(ctx, form)
		require.NoError(t, err)

		view, _, err := app.Navigate("/")
		require.NoError(t, err)
		require.Equal(t, expected, view)
	}
	register(farmerApp, RegisterForm{
		Name: "Kisan", Phone: "9000000001", Email: "kisan@example.test",
		Password: "pw", Location: "Karnal, Haryana",
	}, navigation.Producer)
	register(buyerApp, RegisterForm{
		Name: "Vyapari", Phone: "9000000002", Email: "vyapari@example.test",
		Password: "pw", Role: models.RoleBuyer,
	}, navigation.Purchaser)

	// Step 2
	producer, err := farmerApp.ProducerView()
	require.NoError(t, err)
	require.NoError(t, producer.Load(ctx).Err())
	assert.Len(t, producer.Prices(), 8)

	form := validForm()
	form.CropType = "Basmati Rice"
	crop, err := producer.Create(ctx, form)
	require.NoError(t, err)
	require.Len(t, producer.Crops(), 1)

	// Step 3
	purchaser, err := buyerApp.PurchaserView()
	require.NoError(t, err)
	require.NoError(t, purchaser.Load(ctx).Err())
	require.NoError(t, purchaser.Search(ctx, "basmati", ""))
	found := purchaser.Crops()
	require.Len(t, found, 1)
	assert.Equal(t, "Karnal, Haryana", found[0].FarmerLocation)

	require.NoError(t, purchaser.OpenCompose(found[0]))
	require.NoError(t, purchaser.SetDraft("Rate for 20 quintal?"))
	_, err = purchaser.Send(ctx)
	require.NoError(t, err)

	// Step 4
	require.NoError(t, producer.Load(ctx).Err())
	recent := producer.RecentMessages(DashboardMessages)
	require.Len(t, recent, 1)
	assert.Equal(t, "Vyapari", recent[0].BuyerName)

	// Step 5
	reloaded := session.NewStore(session.NewFileStorage(farmerFile))
	sess, err := reloaded.Load()
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, farmerApp.Store().Token(), sess.Token)

	second := NewProducerView(api, reloaded, &recorder{})
	second.Load(ctx)
	require.NoError(t, second.Delete(ctx, crop.ID))
	assert.Empty(t, second.Crops())

	require.NoError(t, farmerApp.Logout())
	assert.Equal(t, navigation.Anonymous, farmerApp.State())

	after, err := session.NewStore(session.NewFileStorage(farmerFile)).Load()
	require.NoError(t, err)
	assert.Nil(t, after)
}

func TestBackendRejectionSurfacesDetail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	srv := httptest.NewServer(router.NewRouter(db, testutil.GetTestConfig()))
	t.Cleanup(func() {
		srv.Close()
		db.Close()
	})

	notify := &recorder{}
	app := NewApp(apiclient.New(srv.URL), session.NewStore(session.NewMemoryStorage()), notify)
	authView, err := app.AuthView()
	require.NoError(t, err)

	_, err = authView.Login(context.Background(), LoginForm{Email: "ghost@example.test", Password: "pw"})
	require.Error(t, err)
	assert.True(t, apiclient.IsUnauthorized(err))
	assert.Equal(t, "Invalid credentials", notify.lastError())
	assert.Equal(t, navigation.Anonymous, app.State())
}
