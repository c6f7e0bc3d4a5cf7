package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
)

const (
	ForwardedForHeader = "X-Forwarded-For"
	RealIPHeader       = "X-Real-IP"
)

// TrustedProxies список сетей, чьим заголовкам X-Forwarded-For и X-Real-IP можно верить
type TrustedProxies struct {
	nets []*net.IPNet
}

// ParseTrustedProxies разбирает список CIDR. Пустой список означает, что заголовки игнорируются.
func ParseTrustedProxies(cidrs []string) (*TrustedProxies, error) {
	proxies := &TrustedProxies{}
	for _, cidr := range cidrs {
		_, n, err := net.ParseCIDR(strings.TrimSpace(cidr))
		if err != nil {
			return nil, fmt.Errorf("middleware: invalid trusted proxy %q: %v", cidr, err)
		}
		proxies.nets = append(proxies.nets, n)
	}
	return proxies, nil
}

// Contains сообщает, входит ли адрес в одну из доверенных сетей
func (p *TrustedProxies) Contains(ip net.IP) bool {
	if p == nil || ip == nil {
		return false
	}
	for _, n := range p.nets {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

// Resolve определяет IP клиента.
// Заголовки читаются только когда соединение пришло от доверенного прокси;
// X-Forwarded-For просматривается справа налево до первого недоверенного адреса.
func (p *TrustedProxies) Resolve(r *http.Request) string {
	peer := remoteHost(r)
	if !p.Contains(net.ParseIP(peer)) {
		return peer
	}

	if forwarded := r.Header.Get(ForwardedForHeader); forwarded != "" {
		hops := strings.Split(forwarded, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			ip := net.ParseIP(hop)
			if ip == nil {
				// мусор в цепочке: дальше влево верить нельзя
				return peer
			}
			if !p.Contains(ip) {
				return ip.String()
			}
			peer = ip.String()
		}
		return peer
	}

	if ip := net.ParseIP(strings.TrimSpace(r.Header.Get(RealIPHeader))); ip != nil {
		return ip.String()
	}
	return peer
}

// RealIP сохраняет IP клиента в контексте запроса
func RealIP(proxies *TrustedProxies) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), clientIPKey, proxies.Resolve(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClientIP возвращает IP, определённый RealIP, или адрес соединения.
// Заголовки запроса здесь не читаются.
func ClientIP(r *http.Request) string {
	if ip, ok := r.Context().Value(clientIPKey).(string); ok && ip != "" {
		return ip
	}
	return remoteHost(r)
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
