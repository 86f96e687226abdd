package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"chiroportaal/internal/analytics"
	"chiroportaal/internal/config"
	"chiroportaal/internal/db"
	"chiroportaal/internal/httpserver"
	"chiroportaal/internal/identity"
	"chiroportaal/internal/mail"
	"chiroportaal/internal/metrics"
	addressrepo "chiroportaal/internal/repository/address"
	agreementrepo "chiroportaal/internal/repository/agreement"
	eventrepo "chiroportaal/internal/repository/event"
	grouprepo "chiroportaal/internal/repository/group"
	memberrepo "chiroportaal/internal/repository/member"
	membershiprepo "chiroportaal/internal/repository/membership"
	parentrepo "chiroportaal/internal/repository/parent"
	sponsorrepo "chiroportaal/internal/repository/sponsor"
	workyearrepo "chiroportaal/internal/repository/workyear"
	addresssvc "chiroportaal/internal/service/address"
	agreementsvc "chiroportaal/internal/service/agreement"
	contactsvc "chiroportaal/internal/service/contact"
	eventsvc "chiroportaal/internal/service/event"
	groupsvc "chiroportaal/internal/service/group"
	membersvc "chiroportaal/internal/service/member"
	membershipsvc "chiroportaal/internal/service/membership"
	parentsvc "chiroportaal/internal/service/parent"
	sponsorsvc "chiroportaal/internal/service/sponsor"
	workyearsvc "chiroportaal/internal/service/workyear"
)

func main() {
	cfg := config.Load()
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if cfg.JWTSigningKey == "" {
		logger.Fatal("JWT_SIGNING_KEY must be set")
	}

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatal("connect to db", zap.Error(err))
	}
	defer dbpool.Close()

	addressRepo := addressrepo.NewPostgres(dbpool, logger)
	groupRepo := grouprepo.NewPostgres(dbpool, logger)
	workYearRepo := workyearrepo.NewPostgres(dbpool, logger)
	memberRepo := memberrepo.NewPostgres(dbpool, logger)
	parentRepo := parentrepo.NewPostgres(dbpool, logger)
	sponsorRepo := sponsorrepo.NewPostgres(dbpool, logger)
	membershipRepo := membershiprepo.NewPostgres(dbpool, logger)
	agreementRepo := agreementrepo.NewPostgres(dbpool, logger)
	eventRepo := eventrepo.NewPostgres(dbpool, logger)

	addressService := addresssvc.New(addressRepo)
	groupService := groupsvc.New(groupRepo)
	workYearService := workyearsvc.New(workYearRepo)
	memberService := membersvc.New(memberRepo, parentRepo)
	parentService := parentsvc.New(parentRepo, addressService)
	sponsorService := sponsorsvc.New(sponsorRepo)
	membershipService := membershipsvc.New(membershipRepo, memberRepo, groupRepo, workYearRepo)
	agreementService := agreementsvc.New(agreementRepo)
	eventService := eventsvc.New(eventRepo, membershipRepo)

	identityService := identity.NewService(identity.NewPostgresStore(dbpool), cfg.JWTSigningKey, cfg.TokenTTL)

	sender := mail.NewSMTP(cfg.SMTPAddr, cfg.SMTPFrom, cfg.SMTPUsername, cfg.SMTPPassword)
	tracker := analytics.NewLogger(logger)
	contactService := contactsvc.New(sender, tracker, cfg.ContactInbox)

	m := metrics.New(prometheus.DefaultRegisterer)

	srv := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Addresses:   addressService,
		Groups:      groupService,
		WorkYears:   workYearService,
		Members:     memberService,
		Parents:     parentService,
		Sponsors:    sponsorService,
		Memberships: membershipService,
		Agreements:  agreementService,
		Events:      eventService,
		Contact:     contactService,
		Identity:    identityService,
		Metrics:     m,
	})

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting http server", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	} else {
		logger.Info("server stopped")
	}
}
