package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/arkade-os/offerd/internal/core/application"
	"github.com/arkade-os/offerd/internal/core/ports"
	"github.com/arkade-os/offerd/internal/infrastructure/db"
	inmemorylocker "github.com/arkade-os/offerd/internal/infrastructure/locker/inmemory"
	redislocker "github.com/arkade-os/offerd/internal/infrastructure/locker/redis"
	"github.com/arkade-os/offerd/internal/infrastructure/signer"
	"github.com/arkade-os/offerd/pkg/salefee"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/ethereum/go-ethereum/common"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var (
	supportedDbs = supportedType{
		"badger":   {},
		"sqlite":   {},
		"postgres": {},
	}
	supportedLockers = supportedType{
		"inmemory": {},
		"redis":    {},
	}
)

type Config struct {
	Datadir     string
	Port        uint32
	AdminPort   uint32
	LogLevel    int
	EnablePprof bool

	DbType     string
	DbDir      string
	DbUrl      string
	LockerType string
	RedisUrl   string
	LockTTL    time.Duration

	AdminAddress      common.Address
	ExchangeAddress   common.Address
	MintSignerAddress common.Address
	FeeRecipient      common.Address
	BuyerFeeBps       uint32
	SellerFeeBps      uint32

	repo     ports.RepoManager
	locker   ports.KeyLocker
	verifier ports.SignatureVerifier
	svc      application.Service
	adminSvc application.AdminService
}

func (c *Config) String() string {
	clone := *c
	clone.DbUrl = maskUrl(clone.DbUrl)
	clone.RedisUrl = maskUrl(clone.RedisUrl)
	json, err := json.MarshalIndent(clone, "", "  ")
	if err != nil {
		return fmt.Sprintf("error while marshalling config JSON: %s", err)
	}
	return string(json)
}

var (
	defaultDatadir      = btcutil.AppDataDir("offerd", false)
	DefaultPort         = 7080
	DefaultAdminPort    = 7081
	defaultDbType       = "badger"
	defaultLockerType   = "inmemory"
	defaultLockTTL      = 10 * time.Second
	defaultLogLevel     = 4
	defaultBuyerFeeBps  = 250
	defaultSellerFeeBps = 250
	defaultEnablePprof  = false
)

// env returns a list of strings prefixed with `OFFERD_`.
// This is used as a syntax sugar for defining env vars.
func env(values ...string) []string {
	envs := make([]string, len(values))

	for i, value := range values {
		envs[i] = fmt.Sprintf("OFFERD_%s", value)
	}

	return envs
}

var (
	Datadir = &cli.StringFlag{
		Usage: "Directory to store data",
		Name:  "datadir", EnvVars: env("DATADIR"),
		Value: defaultDatadir,
	}

	Port = &cli.UintFlag{
		Usage: "Port (public) to listen on",
		Name:  "port", EnvVars: env("PORT"),
		Value: uint(DefaultPort),
	}

	AdminPort = &cli.UintFlag{
		Usage: "Admin port (private) to listen on, fallback to service port if 0",
		Name:  "admin-port", EnvVars: env("ADMIN_PORT"),
		Value: uint(DefaultAdminPort),
	}

	LogLevel = &cli.IntFlag{
		Usage: "Logging level (0-6, where 6 is trace)",
		Name:  "log-level", EnvVars: env("LOG_LEVEL"),
		Value: defaultLogLevel,
	}

	DbType = &cli.StringFlag{
		Usage: "Database type (badger, sqlite, postgres)",
		Name:  "db-type", EnvVars: env("DB_TYPE"),
		Value: defaultDbType,
	}

	DbUrl = &cli.StringFlag{
		Usage: "Postgres connection url if OFFERD_DB_TYPE is set to postgres",
		Name:  "pg-db-url", EnvVars: env("PG_DB_URL"),
	}

	LockerType = &cli.StringFlag{
		Usage: "Order lock service type (inmemory, redis)",
		Name:  "locker-type", EnvVars: env("LOCKER_TYPE"),
		Value: defaultLockerType,
	}

	RedisUrl = &cli.StringFlag{
		Usage: "Redis db connection url if OFFERD_LOCKER_TYPE is set to redis",
		Name:  "redis-url", EnvVars: env("REDIS_URL"),
	}

	LockTTL = &cli.DurationFlag{
		Usage: "Lease of an order lock held in redis",
		Name:  "lock-ttl", EnvVars: env("LOCK_TTL"),
		Value: defaultLockTTL,
	}

	AdminAddress = &cli.StringFlag{
		Usage: "Address allowed to change fee rates, fee proxies and nonce operator",
		Name:  "admin-address", EnvVars: env("ADMIN_ADDRESS"),
	}

	ExchangeAddress = &cli.StringFlag{
		Usage: "Address the settlement service acts as when transferring units",
		Name:  "exchange-address", EnvVars: env("EXCHANGE_ADDRESS"),
	}

	MintSignerAddress = &cli.StringFlag{
		Usage: "Address whose signature authorizes the mint of a unit class",
		Name:  "mint-signer-address", EnvVars: env("MINT_SIGNER_ADDRESS"),
	}

	FeeRecipient = &cli.StringFlag{
		Usage:       "Initial recipient of the marketplace fees",
		Name:        "fee-recipient",
		EnvVars:     env("FEE_RECIPIENT"),
		DefaultText: "admin address",
	}

	BuyerFeeBps = &cli.UintFlag{
		Usage: "Initial buyer fee rate in basis points, applied if none is stored",
		Name:  "buyer-fee-bps", EnvVars: env("BUYER_FEE_BPS"),
		Value: uint(defaultBuyerFeeBps),
	}

	SellerFeeBps = &cli.UintFlag{
		Usage: "Initial seller fee rate in basis points, applied if none is stored",
		Name:  "seller-fee-bps", EnvVars: env("SELLER_FEE_BPS"),
		Value: uint(defaultSellerFeeBps),
	}

	EnablePprof = &cli.BoolFlag{
		Usage: "Enable pprof endpoints on the admin port",
		Name:  "enable-pprof", EnvVars: env("ENABLE_PPROF"),
		Value: defaultEnablePprof,
	}
)

var Flags = []cli.Flag{
	Datadir,
	Port,
	AdminPort,
	LogLevel,
	DbType,
	DbUrl,
	LockerType,
	RedisUrl,
	LockTTL,
	AdminAddress,
	ExchangeAddress,
	MintSignerAddress,
	FeeRecipient,
	BuyerFeeBps,
	SellerFeeBps,
	EnablePprof,
}

func LoadConfig(c *cli.Context) (*Config, error) {
	if err := initDatadir(c); err != nil {
		return nil, fmt.Errorf("failed to create datadir: %s", err)
	}

	dbPath := filepath.Join(c.String(Datadir.Name), "db")

	var dbUrl string
	if c.String(DbType.Name) == "postgres" {
		dbUrl = c.String(DbUrl.Name)
		if dbUrl == "" {
			return nil, fmt.Errorf("db type set to 'postgres' but db url is missing")
		}
	}

	var redisUrl string
	if c.String(LockerType.Name) == "redis" {
		redisUrl = c.String(RedisUrl.Name)
		if redisUrl == "" {
			return nil, fmt.Errorf("locker type set to 'redis' but redis url is missing")
		}
	}

	adminAddress, err := parseAddress(c.String(AdminAddress.Name), AdminAddress.Name)
	if err != nil {
		return nil, err
	}
	exchangeAddress, err := parseAddress(c.String(ExchangeAddress.Name), ExchangeAddress.Name)
	if err != nil {
		return nil, err
	}
	mintSignerAddress, err := parseAddress(
		c.String(MintSignerAddress.Name), MintSignerAddress.Name,
	)
	if err != nil {
		return nil, err
	}

	// The admin collects the fees unless told otherwise.
	feeRecipient := adminAddress
	if recipient := c.String(FeeRecipient.Name); recipient != "" {
		if feeRecipient, err = parseAddress(recipient, FeeRecipient.Name); err != nil {
			return nil, err
		}
	}

	// In case the admin port is unset, fallback to service port.
	adminPort := c.Uint(AdminPort.Name)
	if adminPort == 0 {
		adminPort = c.Uint(Port.Name)
	}

	return &Config{
		Datadir:           c.String(Datadir.Name),
		Port:              uint32(c.Uint(Port.Name)),
		AdminPort:         uint32(adminPort),
		LogLevel:          c.Int(LogLevel.Name),
		EnablePprof:       c.Bool(EnablePprof.Name),
		DbType:            c.String(DbType.Name),
		DbDir:             dbPath,
		DbUrl:             dbUrl,
		LockerType:        c.String(LockerType.Name),
		RedisUrl:          redisUrl,
		LockTTL:           c.Duration(LockTTL.Name),
		AdminAddress:      adminAddress,
		ExchangeAddress:   exchangeAddress,
		MintSignerAddress: mintSignerAddress,
		FeeRecipient:      feeRecipient,
		BuyerFeeBps:       uint32(c.Uint(BuyerFeeBps.Name)),
		SellerFeeBps:      uint32(c.Uint(SellerFeeBps.Name)),
	}, nil
}

func initDatadir(c *cli.Context) error {
	datadir := c.String(Datadir.Name)
	return makeDirectoryIfNotExists(datadir)
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0o755)
	}
	return nil
}

func (c *Config) Validate() error {
	if !supportedDbs.supports(c.DbType) {
		return fmt.Errorf("db type not supported, please select one of: %s", supportedDbs)
	}
	if !supportedLockers.supports(c.LockerType) {
		return fmt.Errorf(
			"locker type not supported, please select one of: %s", supportedLockers,
		)
	}
	if c.AdminAddress == (common.Address{}) {
		return fmt.Errorf("missing admin address")
	}
	if c.ExchangeAddress == (common.Address{}) {
		return fmt.Errorf("missing exchange address")
	}
	if c.MintSignerAddress == (common.Address{}) {
		return fmt.Errorf("missing mint signer address")
	}
	if c.ExchangeAddress == c.AdminAddress {
		return fmt.Errorf("exchange and admin addresses must differ")
	}
	for _, bps := range []uint32{c.BuyerFeeBps, c.SellerFeeBps} {
		if err := salefee.ValidateBps(bps); err != nil {
			return fmt.Errorf("invalid fee rate: %w", err)
		}
	}

	// The datastore is opened only once, badger holds a lock on its directory.
	if c.repo == nil {
		if err := c.repoManager(); err != nil {
			return err
		}
	}
	if c.locker == nil {
		if err := c.lockerService(); err != nil {
			return err
		}
	}
	if err := c.signerService(); err != nil {
		return err
	}
	if err := c.adminService(); err != nil {
		return err
	}
	return nil
}

func (c *Config) AppService() (application.Service, error) {
	if c.svc == nil {
		if err := c.appService(); err != nil {
			return nil, err
		}
	}
	return c.svc, nil
}

func (c *Config) AdminService() application.AdminService {
	return c.adminSvc
}

func (c *Config) repoManager() error {
	var dataStoreConfig []interface{}
	logger := log.New()

	switch c.DbType {
	case "badger":
		dataStoreConfig = []interface{}{c.DbDir, logger}
	case "sqlite":
		dataStoreConfig = []interface{}{c.DbDir}
	case "postgres":
		dataStoreConfig = []interface{}{c.DbUrl, true}
	default:
		return fmt.Errorf("unknown db type")
	}

	svc, err := db.NewService(db.ServiceConfig{
		DbType:   c.DbType,
		DbConfig: dataStoreConfig,
	})
	if err != nil {
		return err
	}

	c.repo = svc
	return nil
}

func (c *Config) lockerService() error {
	var svc ports.KeyLocker
	switch c.LockerType {
	case "inmemory":
		svc = inmemorylocker.NewLocker()
	case "redis":
		redisOpts, err := redis.ParseURL(c.RedisUrl)
		if err != nil {
			return fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		rdb := redis.NewClient(redisOpts)
		svc = redislocker.NewLocker(rdb, c.LockTTL)
	default:
		return fmt.Errorf("unknown locker type")
	}

	c.locker = svc
	return nil
}

func (c *Config) signerService() error {
	c.verifier = signer.NewVerifier()
	return nil
}

func (c *Config) appService() error {
	if c.repo == nil || c.locker == nil || c.verifier == nil {
		return fmt.Errorf("config not validated")
	}

	svc, err := application.NewService(
		c.repo, c.locker, c.verifier,
		c.AdminAddress, c.ExchangeAddress, c.MintSignerAddress,
		c.BuyerFeeBps, c.SellerFeeBps, c.FeeRecipient,
	)
	if err != nil {
		return err
	}

	c.svc = svc
	return nil
}

func (c *Config) adminService() error {
	c.adminSvc = application.NewAdminService(c.repo, c.AdminAddress)
	return nil
}

func parseAddress(addr, flag string) (common.Address, error) {
	if addr == "" {
		return common.Address{}, nil
	}
	if !common.IsHexAddress(addr) {
		return common.Address{}, fmt.Errorf("invalid %s: %s", flag, addr)
	}
	return common.HexToAddress(addr), nil
}

func maskUrl(url string) string {
	scheme, rest, ok := strings.Cut(url, "://")
	if !ok {
		return url
	}
	credentials, host, ok := strings.Cut(rest, "@")
	if !ok {
		return url
	}
	user, _, hasPassword := strings.Cut(credentials, ":")
	if !hasPassword {
		return url
	}
	return fmt.Sprintf("%s://%s:••••••@%s", scheme, user, host)
}

type supportedType map[string]struct{}

func (t supportedType) String() string {
	types := make([]string, 0, len(t))
	for tt := range t {
		types = append(types, tt)
	}
	return strings.Join(types, " | ")
}

func (t supportedType) supports(typeStr string) bool {
	_, ok := t[typeStr]
	return ok
}
