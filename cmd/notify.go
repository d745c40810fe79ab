package cmd

import (
	"context"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	bookingPostgres "github.com/alx-travel/travelbook/internal/booking/postgres"
	"github.com/alx-travel/travelbook/internal/notification"
	"github.com/alx-travel/travelbook/pkg/logger"
)

var (
	notifyCmd = &cobra.Command{
		RunE:  runNotify,
		Use:   "notify",
		Short: "resend booking confirmation emails for the given booking ids",
	}
	notifyBookingIDs []int64
)

func init() {
	notifyCmd.Flags().Int64SliceVar(&notifyBookingIDs, "booking", nil, "booking id to resend (repeatable)")
	_ = notifyCmd.MarkFlagRequired("booking")

	rootCmd.AddCommand(notifyCmd)
}

// runNotify sends confirmations synchronously, bypassing the queue.
// Useful when a job was dropped or the mail server was down.
func runNotify(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(".")
	if err != nil {
		return err
	}

	logger.Init(cfg.Observability.Logging.Level, cfg.Observability.Logging.Format)
	log := logger.LoggerWrapper()

	db, err := initDB(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to open gorm connection: %w", err)
	}

	bookingRepo := bookingPostgres.NewBookingRepository(gormDB)
	mailer := notification.NewSMTPMailer(cfg.Mail, log)
	sender := notification.NewConfirmationSender(bookingRepo, mailer, log)

	ctx := context.Background()
	var failed int
	for _, id := range notifyBookingIDs {
		if err := sender.SendBookingConfirmation(ctx, id); err != nil {
			log.Error("failed to send confirmation", "booking_id", id, "error", err)
			failed++
			continue
		}
		log.Info("confirmation sent", "booking_id", id)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d confirmations failed", failed, len(notifyBookingIDs))
	}
	return nil
}
