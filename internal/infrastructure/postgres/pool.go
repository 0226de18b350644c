package postgres

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Confecciones-api/pkg/config"
)

// NewPool crea el pool de conexiones del taller, con el codec de shopspring/decimal
// registrado en cada conexión (precios, costos y existencias son NUMERIC).
//
// Con cfg.ForceIPv4 el host se resuelve a IPv4 antes de conectar; en contenedores sin
// IPv6 el DNS de algunos proveedores solo devuelve AAAA.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(poolDSN(cfg, resolveIPv4))
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}
	if cfg.ForceIPv4 {
		poolConfig.ConnConfig.DialFunc = ipv4DialFunc(resolveIPv4)
	}

	applyPoolLimits(poolConfig, cfg)
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	log.Info().
		Str("database", poolConfig.ConnConfig.Database).
		Int32("max_conns", poolConfig.MaxConns).
		Bool("ipv4", cfg.ForceIPv4).
		Msg("pool PostgreSQL listo")
	return pool, nil
}

type resolverFunc func(host string) (string, error)

// poolDSN arma el DSN: DATABASE_URL si existe, si no el de DB_HOST/DB_PORT/...
// Con ForceIPv4 el host se sustituye por su IPv4 cuando se puede resolver.
func poolDSN(cfg config.DBConfig, resolve resolverFunc) string {
	if !cfg.ForceIPv4 {
		return cfg.ConnectionString()
	}
	if cfg.DatabaseURL != "" {
		return databaseURLWithIPv4(cfg.DatabaseURL, resolve)
	}
	if ipv4, err := resolve(cfg.Host); err == nil {
		cfg.Host = ipv4
	}
	return cfg.DSN()
}

// ipv4DialFunc marca tcp4 cuando el host resuelve a IPv4; si no, dial normal.
func ipv4DialFunc(resolve resolverFunc) pgconn.DialFunc {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		dialer := &net.Dialer{}
		host, port, err := net.SplitHostPort(addr)
		if err != nil {
			return nil, err
		}
		ipv4, err := resolve(host)
		if err != nil {
			return dialer.DialContext(ctx, network, addr)
		}
		return dialer.DialContext(ctx, "tcp4", net.JoinHostPort(ipv4, port))
	}
}

// applyPoolLimits toma los tamaños del pool de la configuración; valores no positivos
// dejan los de pgxpool.
func applyPoolLimits(poolConfig *pgxpool.Config, cfg config.DBConfig) {
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = int32(cfg.MaxConns)
	}
	if cfg.MinConns > 0 && int32(cfg.MinConns) <= poolConfig.MaxConns {
		poolConfig.MinConns = int32(cfg.MinConns)
	}
}

// resolveIPv4 resuelve un hostname a IPv4. Prueba el resolver por defecto y luego
// un DNS público por si el del contenedor solo devuelve IPv6.
func resolveIPv4(host string) (string, error) {
	if ip := net.ParseIP(host); ip != nil {
		if ip.To4() != nil {
			return host, nil
		}
		return "", fmt.Errorf("%s es IPv6", host)
	}
	if ip, err := resolveIPv4WithResolver(host, net.DefaultResolver); err == nil {
		return ip, nil
	}
	public := &net.Resolver{
		PreferGo: true,
		Dial: func(ctx context.Context, network, address string) (net.Conn, error) {
			d := net.Dialer{}
			return d.DialContext(ctx, "udp", "8.8.8.8:53")
		},
	}
	return resolveIPv4WithResolver(host, public)
}

func resolveIPv4WithResolver(host string, r *net.Resolver) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	ips, err := r.LookupIP(ctx, "ip4", host)
	if err != nil {
		return "", err
	}
	for _, ip := range ips {
		if ip.To4() != nil {
			return ip.String(), nil
		}
	}
	return "", fmt.Errorf("%s sin dirección IPv4", host)
}

// databaseURLWithIPv4 reemplaza el hostname de la URL por su IPv4; si no resuelve, la deja igual.
func databaseURLWithIPv4(databaseURL string, resolve resolverFunc) string {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return databaseURL
	}
	port := u.Port()
	if port == "" {
		port = "5432"
	}
	ipv4, err := resolve(u.Hostname())
	if err != nil {
		return databaseURL
	}
	u.Host = net.JoinHostPort(ipv4, port)
	return u.String()
}
