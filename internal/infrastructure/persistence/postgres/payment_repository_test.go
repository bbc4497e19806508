package postgres_test

import (
	"context"
	"testing"

	"github.com/ficommerce/payment-service/internal/application"
	"github.com/ficommerce/payment-service/internal/domain"
	"github.com/ficommerce/payment-service/internal/infrastructure/persistence/postgres"
	"github.com/ficommerce/payment-service/internal/infrastructure/persistence/testhelpers"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type PaymentRepositoryTestSuite struct {
	suite.Suite
	testDB *testhelpers.TestDatabase
	repo   *postgres.PaymentRepository
}

func TestPaymentRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed repository tests in short mode")
	}
	suite.Run(t, new(PaymentRepositoryTestSuite))
}

func (suite *PaymentRepositoryTestSuite) SetupSuite() {
	suite.testDB = testhelpers.SetupTestDatabase(suite.T())
	suite.repo = postgres.NewPaymentRepository(suite.testDB.DB.Pool)
}

func (suite *PaymentRepositoryTestSuite) TearDownSuite() {
	suite.testDB.Cleanup(suite.T())
}

func (suite *PaymentRepositoryTestSuite) TearDownTest() {
	suite.testDB.CleanTables(suite.T())
}

func (suite *PaymentRepositoryTestSuite) newPaid(orderID int64, customerID string) *domain.Payment {
	suite.T().Helper()
	money, err := domain.NewMoney(decimal.RequireFromString("50.00"), "USD")
	require.NoError(suite.T(), err)

	payment, err := domain.NewPayment(orderID, customerID, money, domain.MethodCreditCard)
	require.NoError(suite.T(), err)
	require.NoError(suite.T(), payment.MarkPaid(domain.NewSettlementID()))
	return payment
}

func (suite *PaymentRepositoryTestSuite) Test_SaveAndFind() {
	ctx := context.Background()
	payment := suite.newPaid(1, "C1")

	require.NoError(suite.T(), suite.repo.Save(ctx, payment))

	byID, err := suite.repo.FindByID(ctx, payment.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), payment.Reference, byID.Reference)
	assert.Equal(suite.T(), domain.StatusPaid, byID.Status)
	assert.True(suite.T(), byID.Amount.Amount().Equal(decimal.RequireFromString("50.00")))
	assert.Equal(suite.T(), "USD", byID.Amount.Currency())

	byRef, err := suite.repo.FindByReference(ctx, payment.Reference)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), payment.ID, byRef.ID)

	byOrder, err := suite.repo.FindByOrderID(ctx, 1)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), payment.ID, byOrder.ID)
}

func (suite *PaymentRepositoryTestSuite) Test_FindMissesReturnNotFound() {
	ctx := context.Background()

	_, err := suite.repo.FindByID(ctx, domain.NewPaymentID())
	assert.True(suite.T(), domain.IsErrorCode(err, domain.ErrCodePaymentNotFound))

	_, err = suite.repo.FindByReference(ctx, "PAY-missing")
	assert.True(suite.T(), domain.IsErrorCode(err, domain.ErrCodePaymentNotFound))

	_, err = suite.repo.FindByOrderID(ctx, 999)
	assert.True(suite.T(), domain.IsErrorCode(err, domain.ErrCodePaymentNotFound))
}

func (suite *PaymentRepositoryTestSuite) Test_SaveRejectsSecondPaymentForOrder() {
	ctx := context.Background()

	require.NoError(suite.T(), suite.repo.Save(ctx, suite.newPaid(1, "C1")))

	err := suite.repo.Save(ctx, suite.newPaid(1, "C2"))
	assert.True(suite.T(), domain.IsErrorCode(err, domain.ErrCodeDuplicateOrderPayment))
}

func (suite *PaymentRepositoryTestSuite) Test_SaveIsUpsertByID() {
	ctx := context.Background()
	payment := suite.newPaid(1, "C1")
	require.NoError(suite.T(), suite.repo.Save(ctx, payment))

	require.NoError(suite.T(), payment.Refund())
	require.NoError(suite.T(), suite.repo.Save(ctx, payment))

	saved, err := suite.repo.FindByID(ctx, payment.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.StatusRefunded, saved.Status)
}

func (suite *PaymentRepositoryTestSuite) Test_UpdateStatusFromGuard() {
	ctx := context.Background()
	payment := suite.newPaid(1, "C1")
	require.NoError(suite.T(), suite.repo.Save(ctx, payment))

	require.NoError(suite.T(), payment.Refund())

	applied, err := suite.repo.UpdateStatusFrom(ctx, payment, domain.StatusPaid)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), applied)

	// Second writer with a stale expectation loses.
	applied, err = suite.repo.UpdateStatusFrom(ctx, payment, domain.StatusPaid)
	require.NoError(suite.T(), err)
	assert.False(suite.T(), applied)

	saved, err := suite.repo.FindByReference(ctx, payment.Reference)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.StatusRefunded, saved.Status)
}

func (suite *PaymentRepositoryTestSuite) Test_PagedQueries() {
	ctx := context.Background()
	for i := int64(1); i <= 5; i++ {
		customer := "C1"
		if i > 3 {
			customer = "C2"
		}
		require.NoError(suite.T(), suite.repo.Save(ctx, suite.newPaid(i, customer)))
	}

	byCustomer, err := suite.repo.FindByCustomerID(ctx, "C1", application.PageRequest{Page: 0, Size: 2, SortDescending: true})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(3), byCustomer.Total)
	assert.Len(suite.T(), byCustomer.Items, 2)

	byStatus, err := suite.repo.FindByStatus(ctx, domain.StatusPaid, application.PageRequest{Page: 0, Size: 10})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(5), byStatus.Total)

	all, err := suite.repo.FindAll(ctx, application.PageRequest{Page: 2, Size: 2})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(5), all.Total)
	assert.Len(suite.T(), all.Items, 1)

	empty, err := suite.repo.FindByStatus(ctx, domain.StatusRefunded, application.PageRequest{Page: 0, Size: 10})
	require.NoError(suite.T(), err)
	assert.Zero(suite.T(), empty.Total)
	assert.Empty(suite.T(), empty.Items)
}
