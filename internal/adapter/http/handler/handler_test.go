package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"blindbuy-escrow/internal/adapter/http/middleware"
	"blindbuy-escrow/internal/core/domain"
	"blindbuy-escrow/internal/core/ports"
	"blindbuy-escrow/internal/core/ports/mocks"
	"blindbuy-escrow/pkg/apperror"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var (
	alice    = common.HexToAddress("0xA11CE00000000000000000000000000000000001")
	operator = common.HexToAddress("0xAD00000000000000000000000000000000000001")
	token    = common.HexToAddress("0x7E57000000000000000000000000000000007E57")
	handleA  = "0x00000000000000000000000000000000000000000000000000000000000000aa"
	handleB  = "0x00000000000000000000000000000000000000000000000000000000000000bb"
)

func newContext(method, target string, body any, account *common.Address) (*gin.Context, *httptest.ResponseRecorder) {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	if account != nil {
		c.Set(middleware.CtxAccount, *account)
	}
	return c, w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, ok := resp["data"].(map[string]interface{})
	require.True(t, ok, "body: %s", w.Body.String())
	return data
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	code, _ := resp["error_code"].(string)
	return code
}

// --- Auth Handler Tests ---

func TestChallenge_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	expires := time.Now().Add(5 * time.Minute)
	mockAuth.EXPECT().Challenge(gomock.Any(), alice).Return(&ports.Challenge{
		Nonce:     "abc123",
		Message:   "sign me",
		ExpiresAt: expires,
	}, nil)

	c, w := newContext(http.MethodPost, "/api/v1/auth/challenge", map[string]string{"address": alice.Hex()}, nil)
	h.Challenge(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "abc123", data["nonce"])
	assert.Equal(t, "sign me", data["message"])
	assert.Equal(t, float64(expires.Unix()), data["expires_at"])
}

func TestChallenge_InvalidAddress(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewAuthHandler(mocks.NewMockAuthService(ctrl))

	c, w := newContext(http.MethodPost, "/api/v1/auth/challenge", map[string]string{"address": "0x1234"}, nil)
	h.Challenge(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ESC_002", errorCode(t, w))
}

func TestLogin_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	expiry := time.Now().Add(time.Hour)
	mockAuth.EXPECT().Login(gomock.Any(), alice, "abc123", "0xdeadbeef").Return("jwt-token", expiry, nil)

	c, w := newContext(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"address":   alice.Hex(),
		"nonce":     "abc123",
		"signature": "0xdeadbeef",
	}, nil)
	h.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "jwt-token", data["token"])
	assert.Equal(t, float64(expiry.Unix()), data["expiry"])
}

func TestLogin_ChallengeExpired(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	mockAuth.EXPECT().Login(gomock.Any(), alice, "abc123", "0xdeadbeef").Return("", time.Time{}, apperror.ErrChallengeExpired())

	c, w := newContext(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"address":   alice.Hex(),
		"nonce":     "abc123",
		"signature": "0xdeadbeef",
	}, nil)
	h.Login(c)

	assert.Equal(t, "AUTH_002", errorCode(t, w))
}

// --- Order Handler Tests ---

func TestSubmitOrder_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := mocks.NewMockEscrowEngine(ctrl)
	h := NewOrderHandler(engine, nil, nil)

	engine.EXPECT().SubmitOrder(gomock.Any(), alice, ports.ConcealedInput{
		Asset:  common.HexToHash(handleA),
		Amount: common.HexToHash(handleB),
		Proof:  []byte{0xca, 0xfe},
	}).Return(uint64(1), nil)

	c, w := newContext(http.MethodPost, "/api/v1/orders", map[string]string{
		"asset_handle":  handleA,
		"amount_handle": handleB,
		"proof":         "0xcafe",
	}, &alice)
	h.Submit(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, float64(1), decodeData(t, w)["order_id"])
}

func TestSubmitOrder_InvalidProof(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := mocks.NewMockEscrowEngine(ctrl)
	h := NewOrderHandler(engine, nil, nil)

	engine.EXPECT().SubmitOrder(gomock.Any(), alice, gomock.Any()).Return(uint64(0), apperror.ErrInvalidProof())

	c, w := newContext(http.MethodPost, "/api/v1/orders", map[string]string{
		"asset_handle":  handleA,
		"amount_handle": handleB,
		"proof":         "0xcafe",
	}, &alice)
	h.Submit(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "ESC_003", errorCode(t, w))
}

func TestSubmitOrder_NoAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewOrderHandler(mocks.NewMockEscrowEngine(ctrl), nil, nil)

	c, w := newContext(http.MethodPost, "/api/v1/orders", map[string]string{}, nil)
	h.Submit(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCancelOrder_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := mocks.NewMockEscrowEngine(ctrl)
	h := NewOrderHandler(engine, nil, nil)

	engine.EXPECT().CancelOrder(gomock.Any(), alice, uint64(5)).Return(nil)
	engine.EXPECT().GetOrder(uint64(5)).Return(&domain.Order{
		ID:     5,
		User:   alice,
		Status: domain.OrderStatusCancelled,
	}, nil)

	c, w := newContext(http.MethodPost, "/api/v1/orders/5/cancel", nil, &alice)
	c.Params = gin.Params{{Key: "id", Value: "5"}}
	h.Cancel(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "CANCELLED", decodeData(t, w)["status"])
}

func TestCancelOrder_NotOwner(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := mocks.NewMockEscrowEngine(ctrl)
	h := NewOrderHandler(engine, nil, nil)

	engine.EXPECT().CancelOrder(gomock.Any(), alice, uint64(5)).Return(apperror.ErrNotOwner())

	c, w := newContext(http.MethodPost, "/api/v1/orders/5/cancel", nil, &alice)
	c.Params = gin.Params{{Key: "id", Value: "5"}}
	h.Cancel(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "ESC_001", errorCode(t, w))
}

func TestGetOrder_BadID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewOrderHandler(mocks.NewMockEscrowEngine(ctrl), nil, nil)

	for _, id := range []string{"abc", "0", "-1"} {
		c, w := newContext(http.MethodGet, "/api/v1/orders/"+id, nil, &alice)
		c.Params = gin.Params{{Key: "id", Value: id}}
		h.Get(c)
		assert.Equal(t, http.StatusBadRequest, w.Code, id)
	}
}

func TestGetOrder_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := mocks.NewMockEscrowEngine(ctrl)
	h := NewOrderHandler(engine, nil, nil)
	engine.EXPECT().GetOrder(uint64(99)).Return(nil, apperror.ErrNotFound("order"))

	c, w := newContext(http.MethodGet, "/api/v1/orders/99", nil, &alice)
	c.Params = gin.Params{{Key: "id", Value: "99"}}
	h.Get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPendingOrders(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := mocks.NewMockEscrowEngine(ctrl)
	h := NewOrderHandler(engine, nil, nil)
	engine.EXPECT().PendingIDs().Return([]uint64{3, 1})

	c, w := newContext(http.MethodGet, "/api/v1/orders/pending", nil, nil)
	h.Pending(c)

	data := decodeData(t, w)
	assert.Equal(t, float64(2), data["count"])
	assert.Len(t, data["order_ids"], 2)
}

func TestMyOrders_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := mocks.NewMockEscrowEngine(ctrl)
	h := NewOrderHandler(engine, nil, nil)
	engine.EXPECT().UserOrders(alice).Return(nil)

	c, w := newContext(http.MethodGet, "/api/v1/orders/mine", nil, &alice)
	h.Mine(c)

	data := decodeData(t, w)
	assert.Equal(t, alice.Hex(), data["user"])
	assert.Equal(t, []interface{}{}, data["order_ids"])
}

func TestOrderHistory_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reporting := mocks.NewMockReportingService(ctrl)
	h := NewOrderHandler(mocks.NewMockEscrowEngine(ctrl), reporting, nil)

	reporting.EXPECT().ListOrders(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, params ports.OrderListParams) ([]domain.Order, int64, error) {
			require.NotNil(t, params.User)
			assert.Equal(t, alice, *params.User)
			require.NotNil(t, params.Status)
			assert.Equal(t, domain.OrderStatusCompleted, *params.Status)
			require.NotNil(t, params.From)
			assert.Equal(t, int64(1700000000), params.From.Unix())
			return []domain.Order{{ID: 1, User: alice, Status: domain.OrderStatusCompleted, Cost: uint256.NewInt(10)}}, 21, nil
		})

	c, w := newContext(http.MethodGet, "/api/v1/orders/history?status=COMPLETED&from=1700000000&page=1&page_size=20", nil, &alice)
	h.History(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Len(t, data["items"], 1)
	assert.Equal(t, float64(21), data["total"])
	assert.Equal(t, float64(2), data["total_pages"])
}

func TestOrderHistory_ServiceError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reporting := mocks.NewMockReportingService(ctrl)
	h := NewOrderHandler(mocks.NewMockEscrowEngine(ctrl), reporting, nil)
	reporting.EXPECT().ListOrders(gomock.Any(), gomock.Any()).Return(nil, int64(0), errors.New("db down"))

	c, w := newContext(http.MethodGet, "/api/v1/orders/history", nil, &alice)
	h.History(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestOrderStats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reporting := mocks.NewMockReportingService(ctrl)
	h := NewOrderHandler(mocks.NewMockEscrowEngine(ctrl), reporting, nil)
	reporting.EXPECT().GetStats(gomock.Any(), &alice, "week").Return(&ports.OrderStats{
		TotalOrders: 3,
		Completed:   2,
		Failed:      1,
		TotalCost:   uint256.NewInt(200_000_000_000_000_000),
	}, nil)

	c, w := newContext(http.MethodGet, "/api/v1/orders/stats?period=week", nil, &alice)
	h.Stats(c)

	data := decodeData(t, w)
	assert.Equal(t, float64(2), data["completed"])
	assert.Equal(t, "0.2", data["total_cost"])
}

func TestConceal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	concealer := mocks.NewMockConcealer(ctrl)
	h := NewOrderHandler(mocks.NewMockEscrowEngine(ctrl), nil, concealer)
	concealer.EXPECT().Conceal(gomock.Any(), alice, token, uint32(1000)).Return(ports.ConcealedInput{
		Asset:  common.HexToHash(handleA),
		Amount: common.HexToHash(handleB),
		Proof:  []byte{1},
	}, nil)

	c, w := newContext(http.MethodPost, "/api/v1/dev/conceal", map[string]any{"asset": token.Hex(), "amount": 1000}, &alice)
	h.Conceal(c)

	data := decodeData(t, w)
	assert.Equal(t, handleA, data["asset_handle"])
	assert.Equal(t, "0x01", data["proof"])
}

// --- Escrow Handler Tests ---

func TestBalance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := mocks.NewMockEscrowEngine(ctrl)
	h := NewEscrowHandler(engine)
	engine.EXPECT().CashBalance(alice).Return(uint256.NewInt(900_000_000_000_000_000))

	c, w := newContext(http.MethodGet, "/api/v1/escrow/balance", nil, &alice)
	h.Balance(c)

	data := decodeData(t, w)
	assert.Equal(t, "900000000000000000", data["balance_wei"])
	assert.Equal(t, "0.9", data["balance"])
}

func TestBalance_OtherAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := mocks.NewMockEscrowEngine(ctrl)
	h := NewEscrowHandler(engine)
	engine.EXPECT().CashBalance(operator).Return(uint256.NewInt(0))

	c, w := newContext(http.MethodGet, "/api/v1/escrow/balance?account="+operator.Hex(), nil, &alice)
	h.Balance(c)

	data := decodeData(t, w)
	assert.Equal(t, operator.Hex(), data["account"])
	assert.Equal(t, "0", data["balance"])
}

func TestWithdraw_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := mocks.NewMockEscrowEngine(ctrl)
	h := NewEscrowHandler(engine)
	gomock.InOrder(
		engine.EXPECT().WithdrawCash(gomock.Any(), alice, uint256.NewInt(50_000_000_000_000_000)).Return(nil),
		engine.EXPECT().CashBalance(alice).Return(uint256.NewInt(0)),
	)

	c, w := newContext(http.MethodPost, "/api/v1/escrow/withdrawals", map[string]string{"amount": "0.05"}, &alice)
	h.Withdraw(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWithdraw_Insufficient(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := mocks.NewMockEscrowEngine(ctrl)
	h := NewEscrowHandler(engine)
	engine.EXPECT().WithdrawCash(gomock.Any(), alice, gomock.Any()).Return(apperror.ErrInsufficientBalance())

	c, w := newContext(http.MethodPost, "/api/v1/escrow/withdrawals", map[string]string{"amount": "5"}, &alice)
	h.Withdraw(c)

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Equal(t, "ESC_004", errorCode(t, w))
}

func TestWithdraw_ZeroRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewEscrowHandler(mocks.NewMockEscrowEngine(ctrl))

	c, w := newContext(http.MethodPost, "/api/v1/escrow/withdrawals", map[string]string{"amount": "0"}, &alice)
	h.Withdraw(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAsset(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := mocks.NewMockEscrowEngine(ctrl)
	h := NewEscrowHandler(engine)
	engine.EXPECT().Price(token).Return(uint256.NewInt(100_000_000_000_000))
	engine.EXPECT().InventoryBalance(token).Return(uint256.NewInt(5000))

	c, w := newContext(http.MethodGet, "/api/v1/assets/"+token.Hex(), nil, nil)
	c.Params = gin.Params{{Key: "asset", Value: token.Hex()}}
	h.Asset(c)

	data := decodeData(t, w)
	assert.Equal(t, "0.0001", data["price"])
	assert.Equal(t, "5000", data["inventory"])
}

func TestAsset_InvalidAddress(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewEscrowHandler(mocks.NewMockEscrowEngine(ctrl))

	c, w := newContext(http.MethodGet, "/api/v1/assets/nope", nil, nil)
	c.Params = gin.Params{{Key: "asset", Value: "nope"}}
	h.Asset(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSummary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := mocks.NewMockEscrowEngine(ctrl)
	h := NewEscrowHandler(engine)
	engine.EXPECT().TotalEscrow().Return(uint256.NewInt(1_000_000_000_000_000_000))
	engine.EXPECT().PendingCount().Return(4)

	c, w := newContext(http.MethodGet, "/api/v1/escrow/summary", nil, nil)
	h.Summary(c)

	data := decodeData(t, w)
	assert.Equal(t, "1", data["total_escrow"])
	assert.Equal(t, float64(4), data["pending_orders"])
}

// --- Admin Handler Tests ---

func TestSetPrice_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := mocks.NewMockEscrowEngine(ctrl)
	h := NewAdminHandler(engine, nil)

	price := uint256.NewInt(100_000_000_000_000)
	engine.EXPECT().SetPrice(gomock.Any(), operator, token, price).Return(nil)
	engine.EXPECT().Price(token).Return(price)
	engine.EXPECT().InventoryBalance(token).Return(uint256.NewInt(0))

	c, w := newContext(http.MethodPut, "/api/v1/admin/prices/"+token.Hex(), map[string]string{"price": "0.0001"}, &operator)
	c.Params = gin.Params{{Key: "asset", Value: token.Hex()}}
	h.SetPrice(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "100000000000000", decodeData(t, w)["price_wei"])
}

func TestSetPrice_NotOwner(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := mocks.NewMockEscrowEngine(ctrl)
	h := NewAdminHandler(engine, nil)
	engine.EXPECT().SetPrice(gomock.Any(), alice, token, gomock.Any()).Return(apperror.ErrNotOwner())

	c, w := newContext(http.MethodPut, "/api/v1/admin/prices/"+token.Hex(), map[string]string{"price": "1"}, &alice)
	c.Params = gin.Params{{Key: "asset", Value: token.Hex()}}
	h.SetPrice(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestInventory_DepositAndWithdraw(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := mocks.NewMockEscrowEngine(ctrl)
	h := NewAdminHandler(engine, nil)

	engine.EXPECT().DepositInventory(gomock.Any(), operator, token, uint256.NewInt(5000)).Return(nil)
	engine.EXPECT().WithdrawInventory(gomock.Any(), operator, token, uint256.NewInt(6000)).Return(apperror.ErrInsufficientInventory())
	engine.EXPECT().Price(token).Return(nil)
	engine.EXPECT().InventoryBalance(token).Return(uint256.NewInt(5000))

	c, w := newContext(http.MethodPost, "/", map[string]string{"amount": "5000"}, &operator)
	c.Params = gin.Params{{Key: "asset", Value: token.Hex()}}
	h.DepositInventory(c)
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "5000", data["inventory"])
	assert.Equal(t, "0", data["price_wei"])

	c, w = newContext(http.MethodPost, "/", map[string]string{"amount": "6000"}, &operator)
	c.Params = gin.Params{{Key: "asset", Value: token.Hex()}}
	h.WithdrawInventory(c)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "ESC_005", errorCode(t, w))
}

func TestPick_WithSeed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := mocks.NewMockEscrowEngine(ctrl)
	h := NewAdminHandler(engine, nil)

	seed := uint64(42)
	engine.EXPECT().PickRandomAndRequestReveal(gomock.Any(), operator, &seed).Return(&domain.PickResult{OrderID: 3, RequestID: 11}, nil)

	c, w := newContext(http.MethodPost, "/api/v1/admin/settlements/pick", map[string]uint64{"seed": 42}, &operator)
	h.Pick(c)

	assert.Equal(t, http.StatusAccepted, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, float64(3), data["order_id"])
	assert.Equal(t, float64(11), data["request_id"])
}

func TestPick_NoBody_NoActiveOrders(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := mocks.NewMockEscrowEngine(ctrl)
	h := NewAdminHandler(engine, nil)
	engine.EXPECT().PickRandomAndRequestReveal(gomock.Any(), operator, nil).Return(nil, apperror.ErrNoActiveOrders())

	c, w := newContext(http.MethodPost, "/api/v1/admin/settlements/pick", nil, &operator)
	h.Pick(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "ESC_007", errorCode(t, w))
}

func TestAdminStats_RequiresAdmin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := mocks.NewMockEscrowEngine(ctrl)
	reporting := mocks.NewMockReportingService(ctrl)
	h := NewAdminHandler(engine, reporting)

	engine.EXPECT().IsAdmin(alice).Return(false)
	c, w := newContext(http.MethodGet, "/api/v1/admin/stats", nil, &alice)
	h.Stats(c)
	assert.Equal(t, http.StatusForbidden, w.Code)

	engine.EXPECT().IsAdmin(operator).Return(true)
	reporting.EXPECT().GetStats(gomock.Any(), nil, "all").Return(&ports.OrderStats{TotalOrders: 7}, nil)
	c, w = newContext(http.MethodGet, "/api/v1/admin/stats", nil, &operator)
	h.Stats(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(7), decodeData(t, w)["total_orders"])
}

func TestAdminOrders_FilterByUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := mocks.NewMockEscrowEngine(ctrl)
	reporting := mocks.NewMockReportingService(ctrl)
	h := NewAdminHandler(engine, reporting)

	engine.EXPECT().IsAdmin(operator).Return(true)
	reporting.EXPECT().ListOrders(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, params ports.OrderListParams) ([]domain.Order, int64, error) {
			require.NotNil(t, params.User)
			assert.Equal(t, alice, *params.User)
			return nil, 0, nil
		})

	c, w := newContext(http.MethodGet, "/api/v1/admin/orders?user="+alice.Hex(), nil, &operator)
	h.Orders(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decodeData(t, w)["total_pages"])
}

// --- Peer Handler Tests ---

func TestDeposit_CreatedThenReplayed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deposits := mocks.NewMockDepositService(ctrl)
	h := NewPeerHandler(mocks.NewMockEscrowEngine(ctrl), deposits)

	want := domain.Deposit{Reference: "dep-1", User: alice, Amount: uint256.NewInt(1_000_000_000_000_000_000)}
	credited := time.Now()
	gomock.InOrder(
		deposits.EXPECT().ProcessDeposit(gomock.Any(), want).Return(&ports.DepositReceipt{
			Reference: "dep-1", User: alice.Hex(), Amount: "1000000000000000000", CreditedAt: credited,
		}, nil),
		deposits.EXPECT().ProcessDeposit(gomock.Any(), want).Return(&ports.DepositReceipt{
			Reference: "dep-1", User: alice.Hex(), Amount: "1000000000000000000", CreditedAt: credited, Replayed: true,
		}, nil),
	)

	body := map[string]string{"reference": "dep-1", "user": alice.Hex(), "amount_wei": "1000000000000000000"}

	c, w := newContext(http.MethodPost, "/api/v1/custody/deposits", body, nil)
	h.Deposit(c)
	assert.Equal(t, http.StatusCreated, w.Code)

	c, w = newContext(http.MethodPost, "/api/v1/custody/deposits", body, nil)
	h.Deposit(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeData(t, w)["replayed"])
}

func TestDeposit_InvalidBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewPeerHandler(mocks.NewMockEscrowEngine(ctrl), mocks.NewMockDepositService(ctrl))

	c, w := newContext(http.MethodPost, "/api/v1/custody/deposits", map[string]string{"reference": "dep-1", "user": alice.Hex(), "amount_wei": "-1"}, nil)
	h.Deposit(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRevealCallback(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := mocks.NewMockEscrowEngine(ctrl)
	h := NewPeerHandler(engine, mocks.NewMockDepositService(ctrl))

	engine.EXPECT().OnRevealed(gomock.Any(), ports.RevealResult{
		RequestID: 11,
		Asset:     token,
		Amount:    1000,
		OK:        true,
	})

	c, w := newContext(http.MethodPost, "/api/v1/gateway/reveals", map[string]any{
		"request_id": 11,
		"ok":         true,
		"asset":      token.Hex(),
		"amount":     1000,
	}, nil)
	h.RevealCallback(c)

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, float64(11), decodeData(t, w)["request_id"])
}

func TestRevealCallback_Failure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := mocks.NewMockEscrowEngine(ctrl)
	h := NewPeerHandler(engine, mocks.NewMockDepositService(ctrl))

	engine.EXPECT().OnRevealed(gomock.Any(), ports.RevealResult{RequestID: 12, Reason: "decrypt failed"})

	c, w := newContext(http.MethodPost, "/api/v1/gateway/reveals", map[string]any{
		"request_id": 12,
		"ok":         false,
		"reason":     "decrypt failed",
	}, nil)
	h.RevealCallback(c)

	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestRevealCallback_MissingRequestID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewPeerHandler(mocks.NewMockEscrowEngine(ctrl), mocks.NewMockDepositService(ctrl))

	c, w := newContext(http.MethodPost, "/api/v1/gateway/reveals", map[string]any{"ok": true}, nil)
	h.RevealCallback(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- Health Check and Docs ---

func TestHealthCheck(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	HealthCheck()(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
}

func TestHealthCheck_Degraded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	checker := mocks.NewMockHealthChecker(ctrl)
	checker.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused"))
	checker.EXPECT().Name().Return("redis").AnyTimes()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	HealthCheck(checker)(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "connection refused")
}

func TestAPIDocs(t *testing.T) {
	docs := NewAPIDocs([]byte("openapi: '3.0.0'\ninfo:\n  title: Test"))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/swagger", nil)
	docs.UI(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "/swagger/spec")

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/swagger/spec", nil)
	docs.Spec(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "openapi")

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/swagger/spec", nil)
	NewAPIDocs(nil).Spec(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
