package dnsadapter

import (
	"net"
	"strings"
	"sync"

	"github.com/miekg/dns"
	"github.com/rs/zerolog/log"

	"dn42prov/internal/domain/zone"
)

// Server implements ZoneServerPort for serving compiled zone records.
// It answers A, AAAA and CNAME queries from the flattened record sets;
// anything else gets an empty answer.
type Server struct {
	mu    sync.RWMutex
	zones map[string][]zone.FlatRecord
}

func NewServer(zones map[string][]zone.FlatRecord) *Server {
	return &Server{zones: zones}
}

func (s *Server) Start(addr string) error {
	mux := dns.NewServeMux()
	s.mu.RLock()
	for name := range s.zones {
		mux.HandleFunc(dns.Fqdn(name), s.handleDNS)
	}
	count := len(s.zones)
	s.mu.RUnlock()
	server := &dns.Server{Addr: addr, Net: "udp", Handler: mux}
	log.Info().Str("addr", addr).Int("zone_count", count).Msg("starting zone server")
	return server.ListenAndServe()
}

// Update replaces the served record sets after a recompile. Handlers
// are registered per zone at Start, so records in zones added after
// startup are only served once the listener is restarted.
func (s *Server) Update(zones map[string][]zone.FlatRecord) {
	s.mu.Lock()
	s.zones = zones
	s.mu.Unlock()
}

func (s *Server) handleDNS(w dns.ResponseWriter, r *dns.Msg) {
	m := new(dns.Msg)
	m.SetReply(r)
	for _, q := range r.Question {
		m.Answer = append(m.Answer, s.answer(q.Name, q.Qtype)...)
	}
	_ = w.WriteMsg(m)
}

func (s *Server) answer(qname string, qtype uint16) []dns.RR {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var answers []dns.RR
	for zoneName, records := range s.zones {
		for _, rec := range records {
			fqdn := recordFQDN(rec.Name, zoneName)
			if !strings.EqualFold(fqdn, qname) {
				continue
			}
			if rr := buildRR(fqdn, zoneName, rec, qtype); rr != nil {
				answers = append(answers, rr)
			}
		}
	}
	return answers
}

func buildRR(fqdn, zoneName string, rec zone.FlatRecord, qtype uint16) dns.RR {
	hdr := dns.RR_Header{Name: fqdn, Class: dns.ClassINET, Ttl: 60}
	switch rec.Type {
	case "A":
		if qtype != dns.TypeA {
			return nil
		}
		ip := net.ParseIP(rec.Target)
		if ip == nil {
			return nil
		}
		hdr.Rrtype = dns.TypeA
		return &dns.A{Hdr: hdr, A: ip}
	case "AAAA":
		if qtype != dns.TypeAAAA {
			return nil
		}
		ip := net.ParseIP(rec.Target)
		if ip == nil {
			return nil
		}
		hdr.Rrtype = dns.TypeAAAA
		return &dns.AAAA{Hdr: hdr, AAAA: ip}
	case "CNAME":
		hdr.Rrtype = dns.TypeCNAME
		return &dns.CNAME{Hdr: hdr, Target: recordFQDN(rec.Target, zoneName)}
	default:
		return nil
	}
}

// recordFQDN resolves a record name relative to its zone; "@" is the
// zone apex.
func recordFQDN(name, zoneName string) string {
	if name == "@" {
		return dns.Fqdn(zoneName)
	}
	if strings.HasSuffix(name, ".") {
		return name
	}
	return dns.Fqdn(name + "." + zoneName)
}
