package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate(t *testing.T) {
	other := errors.New("boom")
	assert.ErrorIs(t, translate(&mysql.MySQLError{Number: 1062}), ErrDuplicate)
	assert.ErrorIs(t, translate(&mysql.MySQLError{Number: 1451}), ErrReferenced)
	assert.Equal(t, other, translate(other))
	assert.Nil(t, translate(nil))
}

func TestSaleRepo_ListByVendor(t *testing.T) {
	db, mock := newMock(t)
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT DISTINCT s.id, s.date, s.discount").WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"id", "date", "discount"}).AddRow(1, at, 0.0).AddRow(2, at, 10.0))

	sales, err := NewSaleRepo(db).ListByVendor(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, sales, 2)
	assert.Equal(t, 10.0, sales[1].Discount)
}

func TestSaleRepo_Products(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery("FROM saleitem si\\s+JOIN product p").WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"sid", "pid", "quantity", "id", "name", "description", "count", "price", "vid"}).
			AddRow(1, 5, 2, 5, "Mug", "", 3, 9.5, 4))

	list, err := NewSaleRepo(db).Products(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 2, list[0].Quantity)
	assert.Equal(t, "Mug", list[0].Name)
	assert.Equal(t, uint64(5), list[0].Product.ID)
}

func TestSaleRepo_Vendors(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery("SELECT DISTINCT v.id").WithArgs(1).
		WillReturnRows(sqlmock.NewRows(vendorCols).AddRow(4, "Stall", "", "a@b.c", "", "Ann", nil))

	list, err := NewSaleRepo(db).Vendors(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Ann", list[0].Owner)
}

func TestBoothRepo_LatestForVendor(t *testing.T) {
	db, mock := newMock(t)
	at := time.Date(2025, 11, 7, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery("ORDER BY r.date DESC, r.id DESC\\s+LIMIT 1").WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "location", "size", "date", "duration"}).
			AddRow(2, "B2", "Hall A", "3x3", at, 120))

	list, err := NewBoothRepo(db).LatestForVendor(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "B2", list[0].Name)
	assert.Equal(t, at, list[0].ReservationDate)
}

func TestBoothRepo_GetByID_Empty(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("FROM booth WHERE id = \\?").WithArgs(9).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "location", "size"}))

	list, err := NewBoothRepo(db).GetByID(context.Background(), 9)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestDashboardRepo_Stats(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery("COUNT\\(DISTINCT s.id\\)").WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"n", "rev"}).AddRow(3, 42.5))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM product WHERE vid = \\?").WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(6))

	st, err := NewDashboardRepo(db).Stats(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, int64(3), st.TotalSales)
	assert.Equal(t, 42.5, st.TotalRevenue)
	assert.Equal(t, int64(6), st.ActiveProducts)
}

func TestDashboardRepo_TopAndMonthly(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery("LEFT JOIN saleitem si").WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"name", "sales", "revenue"}).AddRow("Mug", 2, 19.0).AddRow("Soap", 0, 0.0))
	mock.ExpectQuery("DATE_FORMAT").WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"month", "sales"}).AddRow("Oct", 10.0).AddRow("Nov", 9.0))

	repo := NewDashboardRepo(db)
	top, err := repo.TopProducts(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, int64(0), top[1].Sales)

	months, err := repo.MonthlySales(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "Nov", months[1].Month)
}

func TestDashboardRepo_RecentSales(t *testing.T) {
	db, mock := newMock(t)
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery("ORDER BY s.date DESC\\s+LIMIT 10").WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "date", "amount", "buyer"}).AddRow(1, "Mug", at, 17.1, "Customer"))

	list, err := NewDashboardRepo(db).RecentSales(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Customer", list[0].Buyer)
}
