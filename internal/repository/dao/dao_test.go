package dao

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/screenhouse/cinema-api/internal/domain"
)

var (
	testDBOnce sync.Once
	testDB     *gorm.DB
	testDBErr  error
)

// setupDB starts a throwaway Postgres container shared by the whole
// package. Tests isolate through their own rows, not their own schema.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDBOnce.Do(func() {
		pool, err := dockertest.NewPool("")
		if err != nil {
			testDBErr = fmt.Errorf("dockertest.NewPool -> %w", err)

			return
		}
		if err = pool.Client.Ping(); err != nil {
			testDBErr = fmt.Errorf("docker is not running -> %w", err)

			return
		}

		resource, err := pool.RunWithOptions(&dockertest.RunOptions{
			Repository: "postgres",
			Tag:        "16-alpine",
			Env: []string{
				"POSTGRES_PASSWORD=secret",
				"POSTGRES_DB=cinema_test",
			},
		}, func(config *docker.HostConfig) {
			config.AutoRemove = true
			config.RestartPolicy = docker.RestartPolicy{Name: "no"}
		})
		if err != nil {
			testDBErr = fmt.Errorf("pool.RunWithOptions -> %w", err)

			return
		}
		_ = resource.Expire(300)

		err = pool.Retry(func() error {
			dsn := fmt.Sprintf(
				"host=localhost port=%v user=postgres password=secret dbname=cinema_test sslmode=disable",
				resource.GetPort("5432/tcp"),
			)

			db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
				Logger: gormlogger.Default.LogMode(gormlogger.Silent),
			})
			if err != nil {
				return err
			}

			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			if err = sqlDB.Ping(); err != nil {
				return err
			}

			testDB = db

			return nil
		})
		if err != nil {
			testDBErr = fmt.Errorf("pool.Retry -> %w", err)

			return
		}

		testDBErr = InitTables(testDB)
	})

	if testDBErr != nil {
		t.Skipf("postgres unavailable: %v", testDBErr)
	}

	return testDB
}

func seedUser(t *testing.T, db *gorm.DB, wallet float64) User {
	t.Helper()

	user := User{
		Email:    fmt.Sprintf("user-%v-%v@example.com", t.Name(), time.Now().UnixNano()),
		Password: "x",
		Name:     "Test User",
		Role:     domain.RoleCustomer,
		Wallet:   wallet,
	}
	require.NoError(t, db.Create(&user).Error)

	return user
}

func seedHall(t *testing.T, db *gorm.DB, rows, seatsPerRow int) Hall {
	t.Helper()

	hall := Hall{
		Name:        fmt.Sprintf("hall-%v-%v", t.Name(), time.Now().UnixNano()),
		Rows:        rows,
		SeatsPerRow: seatsPerRow,
		IsEditable:  true,
	}
	require.NoError(t, db.Create(&hall).Error)

	return hall
}

func seedFilm(t *testing.T, db *gorm.DB, releaseDate time.Time, durationMin int) Film {
	t.Helper()

	film := Film{
		Title:       fmt.Sprintf("film-%v-%v", t.Name(), time.Now().UnixNano()),
		ReleaseDate: releaseDate,
		DurationMin: durationMin,
	}
	require.NoError(t, db.Create(&film).Error)

	return film
}

func seedSeance(t *testing.T, db *gorm.DB, hall Hall, film Film, start time.Time, price float64) Seance {
	t.Helper()

	seance := Seance{
		HallID:         hall.ID,
		FilmID:         film.ID,
		StartTime:      start,
		FinishTime:     start.Add(time.Duration(film.DurationMin) * time.Minute),
		Price:          price,
		RemainingSeats: hall.Rows * hall.SeatsPerRow,
		IsEditable:     true,
	}
	require.NoError(t, db.Omit("Hall", "Film").Create(&seance).Error)

	return seance
}

func TestTicketDAO_InsertPurchase(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	dao := NewTicketDAO(db)

	now := time.Now()
	release := now.AddDate(0, 0, -30)

	t.Run("debits the wallet and freezes the seance", func(t *testing.T) {
		hall := seedHall(t, db, 5, 10)
		film := seedFilm(t, db, release, 120)
		seance := seedSeance(t, db, hall, film, now.Add(2*time.Hour), 250)
		user := seedUser(t, db, 1000)

		tickets, err := dao.InsertPurchase(ctx, user.ID, seance.ID,
			[]domain.SeatRef{{Row: 1, Seat: 1}, {Row: 1, Seat: 2}}, now)

		require.NoError(t, err)
		require.Len(t, tickets, 2)

		var freshSeance Seance
		require.NoError(t, db.First(&freshSeance, seance.ID).Error)
		assert.Equal(t, 48, freshSeance.RemainingSeats)
		assert.False(t, freshSeance.IsEditable)

		var freshUser User
		require.NoError(t, db.First(&freshUser, user.ID).Error)
		assert.InDelta(t, 500, freshUser.Wallet, 0.001)
	})

	t.Run("all or nothing when one seat is taken", func(t *testing.T) {
		hall := seedHall(t, db, 5, 10)
		film := seedFilm(t, db, release, 120)
		seance := seedSeance(t, db, hall, film, now.Add(2*time.Hour), 250)
		first := seedUser(t, db, 1000)
		second := seedUser(t, db, 1000)

		_, err := dao.InsertPurchase(ctx, first.ID, seance.ID,
			[]domain.SeatRef{{Row: 2, Seat: 2}}, now)
		require.NoError(t, err)

		_, err = dao.InsertPurchase(ctx, second.ID, seance.ID,
			[]domain.SeatRef{{Row: 2, Seat: 1}, {Row: 2, Seat: 2}}, now)
		assert.ErrorIs(t, err, domain.ErrSeatTaken)

		var count int64
		require.NoError(t, db.Model(&Ticket{}).Where("seance_id = ? AND user_id = ?", seance.ID, second.ID).Count(&count).Error)
		assert.Zero(t, count)

		var freshUser User
		require.NoError(t, db.First(&freshUser, second.ID).Error)
		assert.InDelta(t, 1000, freshUser.Wallet, 0.001)

		var freshSeance Seance
		require.NoError(t, db.First(&freshSeance, seance.ID).Error)
		assert.Equal(t, 49, freshSeance.RemainingSeats)
	})

	t.Run("concurrent purchases of the same seat have one winner", func(t *testing.T) {
		hall := seedHall(t, db, 5, 10)
		film := seedFilm(t, db, release, 120)
		seance := seedSeance(t, db, hall, film, now.Add(2*time.Hour), 250)

		const buyers = 8
		users := make([]User, buyers)
		for i := range users {
			users[i] = seedUser(t, db, 1000)
		}

		var wg sync.WaitGroup
		errs := make([]error, buyers)
		for i := 0; i < buyers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = dao.InsertPurchase(ctx, users[i].ID, seance.ID,
					[]domain.SeatRef{{Row: 3, Seat: 3}}, now)
			}(i)
		}
		wg.Wait()

		winners := 0
		for _, err := range errs {
			if err == nil {
				winners++
			} else {
				assert.ErrorIs(t, err, domain.ErrSeatTaken)
			}
		}
		assert.Equal(t, 1, winners)

		var freshSeance Seance
		require.NoError(t, db.First(&freshSeance, seance.ID).Error)
		assert.Equal(t, 49, freshSeance.RemainingSeats)
	})

	t.Run("insufficient funds", func(t *testing.T) {
		hall := seedHall(t, db, 5, 10)
		film := seedFilm(t, db, release, 120)
		seance := seedSeance(t, db, hall, film, now.Add(2*time.Hour), 250)
		user := seedUser(t, db, 100)

		_, err := dao.InsertPurchase(ctx, user.ID, seance.ID,
			[]domain.SeatRef{{Row: 1, Seat: 1}}, now)

		assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	})

	t.Run("sale closes at start time", func(t *testing.T) {
		hall := seedHall(t, db, 5, 10)
		film := seedFilm(t, db, release, 120)
		seance := seedSeance(t, db, hall, film, now.Add(-time.Minute), 250)
		user := seedUser(t, db, 1000)

		_, err := dao.InsertPurchase(ctx, user.ID, seance.ID,
			[]domain.SeatRef{{Row: 1, Seat: 1}}, now)

		assert.ErrorIs(t, err, domain.ErrSaleClosed)
	})
}

func TestSeanceDAO_Insert(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	dao := NewSeanceDAO(db)

	now := time.Now()
	release := now.AddDate(0, 0, -30)

	t.Run("rejects overlap in the same hall", func(t *testing.T) {
		hall := seedHall(t, db, 5, 10)
		film := seedFilm(t, db, release, 120)
		existing := seedSeance(t, db, hall, film, now.Add(2*time.Hour), 250)

		_, err := dao.Insert(ctx, Seance{
			HallID:         hall.ID,
			FilmID:         film.ID,
			StartTime:      existing.StartTime.Add(time.Hour),
			FinishTime:     existing.StartTime.Add(3 * time.Hour),
			Price:          250,
			RemainingSeats: 50,
			IsEditable:     true,
		})

		assert.ErrorIs(t, err, domain.ErrSeanceOverlap)
	})

	t.Run("back-to-back is allowed", func(t *testing.T) {
		hall := seedHall(t, db, 5, 10)
		film := seedFilm(t, db, release, 120)
		existing := seedSeance(t, db, hall, film, now.Add(2*time.Hour), 250)

		created, err := dao.Insert(ctx, Seance{
			HallID:         hall.ID,
			FilmID:         film.ID,
			StartTime:      existing.FinishTime,
			FinishTime:     existing.FinishTime.Add(2 * time.Hour),
			Price:          250,
			RemainingSeats: 50,
			IsEditable:     true,
		})

		require.NoError(t, err)
		assert.NotZero(t, created.ID)
	})

	t.Run("same slot in another hall is allowed", func(t *testing.T) {
		hallA := seedHall(t, db, 5, 10)
		hallB := seedHall(t, db, 5, 10)
		film := seedFilm(t, db, release, 120)
		existing := seedSeance(t, db, hallA, film, now.Add(2*time.Hour), 250)

		_, err := dao.Insert(ctx, Seance{
			HallID:         hallB.ID,
			FilmID:         film.ID,
			StartTime:      existing.StartTime,
			FinishTime:     existing.FinishTime,
			Price:          250,
			RemainingSeats: 50,
			IsEditable:     true,
		})

		assert.NoError(t, err)
	})
}

func TestSeanceDAO_InsertBatch(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	dao := NewSeanceDAO(db)

	now := time.Now()
	release := now.AddDate(0, 0, -30)

	t.Run("creates the whole series", func(t *testing.T) {
		hall := seedHall(t, db, 5, 10)
		film := seedFilm(t, db, release, 120)

		batch := make([]Seance, 3)
		for i := range batch {
			start := now.Add(time.Duration(24*(i+1)) * time.Hour)
			batch[i] = Seance{
				HallID:         hall.ID,
				FilmID:         film.ID,
				StartTime:      start,
				FinishTime:     start.Add(2 * time.Hour),
				Price:          250,
				RemainingSeats: 50,
				IsEditable:     true,
			}
		}

		created, err := dao.InsertBatch(ctx, batch)

		require.NoError(t, err)
		require.Len(t, created, 3)
		for _, seance := range created {
			assert.NotZero(t, seance.ID)
		}
	})

	t.Run("rolls back everything when one day overlaps", func(t *testing.T) {
		hall := seedHall(t, db, 5, 10)
		film := seedFilm(t, db, release, 120)
		blocker := seedSeance(t, db, hall, film, now.Add(48*time.Hour), 250)

		batch := make([]Seance, 3)
		for i := range batch {
			start := now.Add(time.Duration(24*(i+1)) * time.Hour)
			batch[i] = Seance{
				HallID:         hall.ID,
				FilmID:         film.ID,
				StartTime:      start,
				FinishTime:     start.Add(2 * time.Hour),
				Price:          250,
				RemainingSeats: 50,
				IsEditable:     true,
			}
		}

		_, err := dao.InsertBatch(ctx, batch)
		assert.ErrorIs(t, err, domain.ErrSeanceOverlap)

		var count int64
		require.NoError(t, db.Model(&Seance{}).Where("hall_id = ?", hall.ID).Count(&count).Error)
		assert.Equal(t, int64(1), count, "only the pre-existing seance should remain, ID %v", blocker.ID)
	})
}

func TestSeanceDAO_Update(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	dao := NewSeanceDAO(db)
	ticketDAO := NewTicketDAO(db)

	now := time.Now()
	release := now.AddDate(0, 0, -30)

	t.Run("reschedules an untouched seance", func(t *testing.T) {
		hall := seedHall(t, db, 5, 10)
		film := seedFilm(t, db, release, 120)
		seance := seedSeance(t, db, hall, film, now.Add(2*time.Hour), 250)

		seance.StartTime = now.Add(5 * time.Hour)
		seance.FinishTime = now.Add(7 * time.Hour)
		seance.Price = 300

		updated, err := dao.Update(ctx, seance, now)

		require.NoError(t, err)
		assert.InDelta(t, 300, updated.Price, 0.001)
		assert.WithinDuration(t, now.Add(5*time.Hour), updated.StartTime, time.Second)
	})

	t.Run("rejected once a ticket is sold", func(t *testing.T) {
		hall := seedHall(t, db, 5, 10)
		film := seedFilm(t, db, release, 120)
		seance := seedSeance(t, db, hall, film, now.Add(2*time.Hour), 250)
		user := seedUser(t, db, 1000)

		_, err := ticketDAO.InsertPurchase(ctx, user.ID, seance.ID,
			[]domain.SeatRef{{Row: 1, Seat: 1}}, now)
		require.NoError(t, err)

		seance.Price = 300
		_, err = dao.Update(ctx, seance, now)

		assert.ErrorIs(t, err, domain.ErrSeanceNotEditable)
	})

	t.Run("rejected once started", func(t *testing.T) {
		hall := seedHall(t, db, 5, 10)
		film := seedFilm(t, db, release, 120)
		seance := seedSeance(t, db, hall, film, now.Add(-time.Hour), 250)

		_, err := dao.Update(ctx, seance, now)

		assert.ErrorIs(t, err, domain.ErrSeanceStarted)
	})

	t.Run("rescheduling cannot create an overlap", func(t *testing.T) {
		hall := seedHall(t, db, 5, 10)
		film := seedFilm(t, db, release, 120)
		blocker := seedSeance(t, db, hall, film, now.Add(6*time.Hour), 250)
		seance := seedSeance(t, db, hall, film, now.Add(2*time.Hour), 250)

		seance.StartTime = blocker.StartTime.Add(time.Hour)
		seance.FinishTime = seance.StartTime.Add(2 * time.Hour)

		_, err := dao.Update(ctx, seance, now)

		assert.ErrorIs(t, err, domain.ErrSeanceOverlap)
	})

	t.Run("keeping its own slot is not an overlap", func(t *testing.T) {
		hall := seedHall(t, db, 5, 10)
		film := seedFilm(t, db, release, 120)
		seance := seedSeance(t, db, hall, film, now.Add(2*time.Hour), 250)

		seance.Price = 275

		_, err := dao.Update(ctx, seance, now)

		assert.NoError(t, err)
	})

	t.Run("concurrent reschedules into the same slot have one winner", func(t *testing.T) {
		hall := seedHall(t, db, 5, 10)
		film := seedFilm(t, db, release, 120)
		first := seedSeance(t, db, hall, film, now.Add(2*time.Hour), 250)
		second := seedSeance(t, db, hall, film, now.Add(6*time.Hour), 250)

		slot := now.Add(10 * time.Hour)

		var wg sync.WaitGroup
		errs := make([]error, 2)
		for i, seance := range []Seance{first, second} {
			wg.Add(1)
			go func(i int, seance Seance) {
				defer wg.Done()
				seance.StartTime = slot
				seance.FinishTime = slot.Add(2 * time.Hour)
				_, errs[i] = dao.Update(ctx, seance, now)
			}(i, seance)
		}
		wg.Wait()

		winners := 0
		for _, err := range errs {
			if err == nil {
				winners++
			} else {
				assert.ErrorIs(t, err, domain.ErrSeanceOverlap)
			}
		}
		assert.Equal(t, 1, winners)
	})

	t.Run("unknown seance", func(t *testing.T) {
		_, err := dao.Update(ctx, Seance{ID: 999999}, now)

		assert.ErrorIs(t, err, ErrSeanceNotFound)
	})
}

func TestSeanceDAO_FreezeStarted(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	dao := NewSeanceDAO(db)

	now := time.Now()
	release := now.AddDate(0, 0, -30)

	hall := seedHall(t, db, 5, 10)
	film := seedFilm(t, db, release, 120)
	past := seedSeance(t, db, hall, film, now.Add(-time.Hour), 250)
	future := seedSeance(t, db, hall, film, now.Add(5*time.Hour), 250)

	frozen, err := dao.FreezeStarted(ctx, now)

	require.NoError(t, err)
	assert.GreaterOrEqual(t, frozen, int64(1))

	var freshPast, freshFuture Seance
	require.NoError(t, db.First(&freshPast, past.ID).Error)
	require.NoError(t, db.First(&freshFuture, future.ID).Error)
	assert.False(t, freshPast.IsEditable)
	assert.True(t, freshFuture.IsEditable)

	// Idempotent: a second sweep finds nothing new for this hall.
	_, err = dao.FreezeStarted(ctx, now)
	assert.NoError(t, err)
}

func TestHallDAO_Update(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	dao := NewHallDAO(db)
	ticketDAO := NewTicketDAO(db)
	seanceDAO := NewSeanceDAO(db)

	now := time.Now()
	release := now.AddDate(0, 0, -30)

	t.Run("resizes an unsold hall", func(t *testing.T) {
		hall := seedHall(t, db, 5, 10)

		hall.Rows = 8
		updated, err := dao.Update(ctx, hall)

		require.NoError(t, err)
		assert.Equal(t, 8, updated.Rows)
	})

	t.Run("resizing resyncs unsold seance seat counters", func(t *testing.T) {
		hall := seedHall(t, db, 5, 10)
		film := seedFilm(t, db, release, 120)
		seance := seedSeance(t, db, hall, film, now.Add(2*time.Hour), 250)
		user := seedUser(t, db, 1000)

		hall.Rows = 2
		hall.SeatsPerRow = 2
		_, err := dao.Update(ctx, hall)
		require.NoError(t, err)

		var fresh Seance
		require.NoError(t, db.First(&fresh, seance.ID).Error)
		assert.Equal(t, 4, fresh.RemainingSeats)

		// The shrunken grid bounds purchases immediately.
		_, err = ticketDAO.InsertPurchase(ctx, user.ID, seance.ID,
			[]domain.SeatRef{{Row: 3, Seat: 1}}, now)
		assert.ErrorIs(t, err, domain.ErrSeatOutOfRange)

		tickets, err := ticketDAO.InsertPurchase(ctx, user.ID, seance.ID,
			[]domain.SeatRef{{Row: 2, Seat: 2}}, now)
		require.NoError(t, err)
		require.Len(t, tickets, 1)

		require.NoError(t, db.First(&fresh, seance.ID).Error)
		assert.Equal(t, 3, fresh.RemainingSeats)
	})

	t.Run("frozen after the first sale", func(t *testing.T) {
		hall := seedHall(t, db, 5, 10)
		film := seedFilm(t, db, release, 120)
		seance := seedSeance(t, db, hall, film, now.Add(2*time.Hour), 250)
		user := seedUser(t, db, 1000)

		_, err := ticketDAO.InsertPurchase(ctx, user.ID, seance.ID,
			[]domain.SeatRef{{Row: 1, Seat: 1}}, now)
		require.NoError(t, err)

		require.NoError(t, dao.FreezeIfSold(ctx, hall.ID))

		hall.Rows = 8
		_, err = dao.Update(ctx, hall)
		assert.ErrorIs(t, err, domain.ErrHallNotEditable)
	})

	t.Run("sweep freezes sold halls", func(t *testing.T) {
		hall := seedHall(t, db, 5, 10)
		film := seedFilm(t, db, release, 120)
		seance := seedSeance(t, db, hall, film, now.Add(2*time.Hour), 250)
		user := seedUser(t, db, 1000)

		_, err := ticketDAO.InsertPurchase(ctx, user.ID, seance.ID,
			[]domain.SeatRef{{Row: 1, Seat: 1}}, now)
		require.NoError(t, err)

		_, err = dao.FreezeSoldHalls(ctx)
		require.NoError(t, err)

		fresh, err := dao.FindByID(ctx, hall.ID)
		require.NoError(t, err)
		assert.False(t, fresh.IsEditable)

		// Untouched halls stay editable after the sweep.
		_, err = seanceDAO.FindByID(ctx, seance.ID)
		assert.NoError(t, err)
	})

	t.Run("unknown hall", func(t *testing.T) {
		_, err := dao.Update(ctx, Hall{ID: 999999, Name: "ghost"})

		assert.ErrorIs(t, err, ErrHallNotFound)
	})
}

func TestUserDAO_Insert(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	dao := NewUserDAO(db)

	t.Run("duplicate email", func(t *testing.T) {
		user := seedUser(t, db, 1000)

		_, err := dao.Insert(ctx, User{
			Email:    user.Email,
			Password: "x",
			Name:     "Dup",
			Role:     domain.RoleCustomer,
		})

		assert.ErrorIs(t, err, ErrUserEmailExists)
	})
}

func TestUserDAO_TotalSpent(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	userDAO := NewUserDAO(db)
	ticketDAO := NewTicketDAO(db)

	now := time.Now()
	release := now.AddDate(0, 0, -30)

	hall := seedHall(t, db, 5, 10)
	film := seedFilm(t, db, release, 120)
	seance := seedSeance(t, db, hall, film, now.Add(2*time.Hour), 250)
	user := seedUser(t, db, 1000)

	total, err := userDAO.TotalSpent(ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, total)

	_, err = ticketDAO.InsertPurchase(ctx, user.ID, seance.ID,
		[]domain.SeatRef{{Row: 1, Seat: 1}, {Row: 1, Seat: 2}}, now)
	require.NoError(t, err)

	total, err = userDAO.TotalSpent(ctx, user.ID)
	require.NoError(t, err)
	assert.InDelta(t, 500, total, 0.001)
}

func TestSeanceDAO_Find(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	dao := NewSeanceDAO(db)

	now := time.Now()
	release := now.AddDate(0, 0, -30)

	hall := seedHall(t, db, 5, 10)
	film := seedFilm(t, db, release, 120)
	early := seedSeance(t, db, hall, film, now.Add(24*time.Hour), 250)
	late := seedSeance(t, db, hall, film, now.Add(30*time.Hour), 250)

	t.Run("filters by hall", func(t *testing.T) {
		found, err := dao.Find(ctx, SeanceQuery{HallID: &hall.ID})

		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, early.ID, found[0].ID)
		assert.Equal(t, late.ID, found[1].ID)
	})

	t.Run("filters by start window", func(t *testing.T) {
		from := now.Add(28 * time.Hour)
		found, err := dao.Find(ctx, SeanceQuery{HallID: &hall.ID, StartFrom: &from})

		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, late.ID, found[0].ID)
	})

	t.Run("preloads hall and film", func(t *testing.T) {
		found, err := dao.Find(ctx, SeanceQuery{HallID: &hall.ID})

		require.NoError(t, err)
		require.NotEmpty(t, found)
		assert.Equal(t, hall.Name, found[0].Hall.Name)
		assert.Equal(t, film.Title, found[0].Film.Title)
	})
}

func TestFilmDAO_SeanceSpans(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	filmDAO := NewFilmDAO(db)

	now := time.Now()
	release := now.AddDate(0, 0, -30)

	hall := seedHall(t, db, 5, 10)
	film := seedFilm(t, db, release, 120)
	first := seedSeance(t, db, hall, film, now.Add(24*time.Hour), 250)
	last := seedSeance(t, db, hall, film, now.Add(72*time.Hour), 250)

	spans, err := filmDAO.SeanceSpans(ctx)
	require.NoError(t, err)

	span, ok := spans[film.ID]
	require.True(t, ok, "expected a span for the seeded film")
	assert.WithinDuration(t, first.StartTime, span.Earliest, time.Second)
	assert.WithinDuration(t, last.StartTime, span.Latest, time.Second)
}

func TestFilmDAO_Insert(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	dao := NewFilmDAO(db)

	now := time.Now()

	film := seedFilm(t, db, now.AddDate(0, 0, -30), 120)

	_, err := dao.Insert(ctx, Film{
		Title:       film.Title,
		ReleaseDate: film.ReleaseDate,
		DurationMin: 90,
	})

	if !errors.Is(err, ErrFilmExists) {
		t.Fatalf("expected ErrFilmExists, got %v", err)
	}
}
