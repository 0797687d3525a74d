package sqlinline

const QInsertCaptionRun = `--sql 4f2d9c1e-6b3a-4e8f-9d1c-2a7b5e8f0c3d
insert into caption_runs (id, tone, state, caption, error, latency_ms, created_at)
values ($1::uuid, $2::text, $3::text, $4::text, $5::text, $6::int, $7::timestamptz);
`

const QSelectRecentRuns = `--sql 9b6e3a7c-1d4f-4b2e-8c5a-7f0d2e9b4a6c
select id, tone, state, caption, error, latency_ms, created_at
from caption_runs
order by created_at desc
limit $1::int;
`
