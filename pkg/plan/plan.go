package plan

import (
	"fmt"

	"github.com/dominikbraun/graph"
	"github.com/klothoplatform/sesdomain/pkg/config"
	"github.com/klothoplatform/sesdomain/pkg/emaildomain"
	"github.com/klothoplatform/sesdomain/pkg/naming"
	"github.com/klothoplatform/sesdomain/pkg/records"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

const (
	TypeEmailDomain    = "email_domain"
	TypeUser           = "iam_user"
	TypeUserPolicy     = "iam_user_policy"
	TypeAccessKey      = "iam_access_key"
	TypeDomainIdentity = "ses_domain_identity"
	TypeMailFrom       = "ses_mail_from"
	TypeDomainDkim     = "ses_domain_dkim"
	TypeRecord         = "route53_record"
)

// Step is one resource the email domain declares.
type Step struct {
	Id         ResourceId
	Properties map[string]string
	// Record is set for DNS records only.
	Record *records.Record

	seq int
}

// Plan is the offline view of what deploying a config declares, in dependency order. Edges go
// from a dependency to its dependent.
type Plan struct {
	Names   naming.Names
	Zone    string
	Region  string
	Records []records.Record
	Graph   graph.Graph[ResourceId, *Step]
}

func stepHash(s *Step) ResourceId {
	return s.Id
}

// PlaceholderTokens stands in for the provider-issued tokens that only exist after deployment.
func PlaceholderTokens(conv naming.Conventions) records.Tokens {
	t := records.Tokens{Verification: "unresolved-verification-token"}
	for i := 0; i < conv.SigningTokenCount; i++ {
		t.Signing = append(t.Signing, fmt.Sprintf("unresolved-dkim-token-%d", i+1))
	}
	return t
}

// New builds the plan for cfg using the default conventions.
func New(cfg config.Config, tokens records.Tokens) (*Plan, error) {
	return NewWithConventions(cfg, naming.Default(), tokens)
}

func NewWithConventions(cfg config.Config, conv naming.Conventions, tokens records.Tokens) (*Plan, error) {
	names, err := conv.Resolve(cfg.BaseDomain, cfg.Environment)
	if err != nil {
		return nil, err
	}
	recs, err := records.All(conv, records.Inputs{Names: names, Region: cfg.Region, AdminEmail: cfg.AdminEmail}, tokens)
	if err != nil {
		return nil, err
	}
	zone := cfg.ZoneName
	if zone == "" {
		zone = cfg.BaseDomain
	}
	p := &Plan{
		Names:   names,
		Zone:    zone,
		Region:  cfg.Region,
		Records: recs,
		Graph:   graph.New(stepHash, graph.Directed(), graph.PreventCycles()),
	}
	b := &builder{plan: p}

	component := b.add(ResourceId{Provider: ProviderComponent, Type: TypeEmailDomain, Name: emaildomain.ResourceName},
		map[string]string{"send_domain": names.SendDomain}, nil)

	child := func(typ, suffix string, props map[string]string, deps ...ResourceId) ResourceId {
		id := ResourceId{Provider: ProviderAWS, Type: typ, Name: emaildomain.LogicalName(names.ResourcePrefix, suffix)}
		return b.add(id, props, nil, append([]ResourceId{component}, deps...)...)
	}
	record := func(key string, deps ...ResourceId) ResourceId {
		var rec *records.Record
		for i := range p.Records {
			if p.Records[i].Key == key {
				rec = &p.Records[i]
				break
			}
		}
		if rec == nil {
			b.errs = append(b.errs, errors.Errorf("no record with key %s", key))
			return ResourceId{}
		}
		id := ResourceId{Provider: ProviderAWS, Type: TypeRecord, Name: emaildomain.LogicalName(names.ResourcePrefix, key)}
		props := map[string]string{
			"name": records.ExpandName(rec.Name, zone),
			"type": string(rec.Type),
			"ttl":  fmt.Sprint(rec.TTL),
		}
		return b.add(id, props, rec, append([]ResourceId{component}, deps...)...)
	}

	user := child(TypeUser, emaildomain.UserSuffix, map[string]string{
		"name": conv.PrincipalName(names.ResourcePrefix),
		"path": conv.PrincipalPath,
	})
	child(TypeUserPolicy, emaildomain.UserPolicySuffix, map[string]string{"allowed_sender": names.AllowedSender}, user)
	child(TypeAccessKey, emaildomain.AccessKeySuffix, nil, user)

	identity := child(TypeDomainIdentity, emaildomain.IdentitySuffix, map[string]string{"domain": names.SendDomain})
	record(records.KeyVerification, identity)

	mailFrom := child(TypeMailFrom, emaildomain.MailFromSuffix, map[string]string{
		"mail_from_domain": conv.MailFromDomain(names.SendDomain),
	}, identity)
	record(records.KeyMailFromMX, mailFrom)
	record(records.KeySenderPolicy, mailFrom)

	dkim := child(TypeDomainDkim, emaildomain.DkimSuffix, map[string]string{"domain": names.SendDomain}, identity)
	for i := 0; i < conv.SigningTokenCount; i++ {
		record(records.SigningKey(i), dkim)
	}
	record(records.KeyReporting, identity)

	if err := multierr.Combine(b.errs...); err != nil {
		return nil, err
	}
	return p, nil
}

type builder struct {
	plan *Plan
	seq  int
	errs []error
}

func (b *builder) add(id ResourceId, props map[string]string, rec *records.Record, deps ...ResourceId) ResourceId {
	step := &Step{Id: id, Properties: props, Record: rec, seq: b.seq}
	b.seq++
	if err := b.plan.Graph.AddVertex(step, graph.VertexAttribute("label", id.Name)); err != nil {
		b.errs = append(b.errs, errors.Wrapf(err, "could not add %s", id))
		return id
	}
	for _, dep := range deps {
		if dep.IsZero() {
			continue
		}
		if err := b.plan.Graph.AddEdge(dep, id); err != nil {
			b.errs = append(b.errs, errors.Wrapf(err, "could not add edge %s -> %s", dep, id))
		}
	}
	return id
}

// Order returns the steps so that every step comes after its dependencies. Ties keep
// declaration order.
func (p *Plan) Order() ([]*Step, error) {
	adj, err := p.Graph.AdjacencyMap()
	if err != nil {
		return nil, err
	}
	steps := make(map[ResourceId]*Step, len(adj))
	for id := range adj {
		s, err := p.Graph.Vertex(id)
		if err != nil {
			return nil, err
		}
		steps[id] = s
	}
	ids, err := graph.StableTopologicalSort(p.Graph, func(a, b ResourceId) bool {
		return steps[a].seq < steps[b].seq
	})
	if err != nil {
		return nil, err
	}
	order := make([]*Step, len(ids))
	for i, id := range ids {
		order[i] = steps[id]
	}
	return order, nil
}

// Dependencies lists the direct dependencies of id, sorted.
func (p *Plan) Dependencies(id ResourceId) ([]ResourceId, error) {
	pred, err := p.Graph.PredecessorMap()
	if err != nil {
		return nil, err
	}
	edges, ok := pred[id]
	if !ok {
		return nil, errors.Errorf("unknown resource %s", id)
	}
	deps := make([]ResourceId, 0, len(edges))
	for dep := range edges {
		deps = append(deps, dep)
	}
	sortIds(deps)
	return deps, nil
}
